package utils

import "flag"

// Flags are the command-line parameters; they override the config file
type Flags struct {
	ConfigPath     string
	GUI            bool
	MaxGenerations int
	Seed           int64
	Adjacency      string
}

// NewFlags returns Flags populated with defaults
func NewFlags() *Flags {
	return &Flags{ConfigPath: "config.yaml"}
}

// Bind attaches the flags to the provided FlagSet
func (f *Flags) Bind(fs *flag.FlagSet) {
	fs.StringVar(&f.ConfigPath, "config", f.ConfigPath, "path to a JSON or YAML config file")
	fs.BoolVar(&f.GUI, "gui", f.GUI, "open a window instead of drawing to the terminal (needs the ebiten build tag)")
	fs.IntVar(&f.MaxGenerations, "generations", f.MaxGenerations, "stop after this many generations, 0 runs forever")
	fs.Int64Var(&f.Seed, "seed", f.Seed, "seed for random fill")
	fs.StringVar(&f.Adjacency, "adjacency", f.Adjacency, "edge mode: wrap or clamp")
}

// Apply copies every flag explicitly set on fs into config
func (f *Flags) Apply(fs *flag.FlagSet, config *Config) {
	set := map[string]bool{}
	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	if set["generations"] {
		config.MaxGenerations = f.MaxGenerations
	}
	if set["seed"] {
		config.Seed = f.Seed
	}
	if set["adjacency"] {
		config.Adjacency = f.Adjacency
	}
}
