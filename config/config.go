package config

// Values of the command line flags, bound in cmd.
var Network string

var (
	ConfigFile string
	Verbose    bool

	Tags  []string
	Reset bool
	Yes   bool

	FundValue string
	Cheaper   bool

	NetworkFile  string
	NetworkForce bool

	ForceInit bool
)
