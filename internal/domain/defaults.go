package domain

// Driver option keys understood by the bridge network driver.
const (
	OptionMTU = "com.docker.network.driver.mtu"
	OptionICC = "com.docker.network.bridge.enable_icc"
)

// EngineDefaults are the values injected when a command omits network flags.
type EngineDefaults struct {
	NetworkName   string
	NetworkDriver string
	Subnet        string
	Gateway       string
	MTU           int
	EnableICC     bool
}

// DefaultEngineDefaults returns the stock bridge network configuration.
func DefaultEngineDefaults() EngineDefaults {
	return EngineDefaults{
		NetworkName:   "bridge",
		NetworkDriver: "bridge",
		Subnet:        "172.17.0.0/16",
		Gateway:       "172.17.0.1",
		MTU:           1500,
		EnableICC:     true,
	}
}
