package config

import "github.com/spf13/pflag"

type CliConfig struct {
	ConfigFile string
	Debug      bool
}

// RegisterFlags attaches the command line options to fs. The returned struct is
// filled in once fs has been parsed.
func RegisterFlags(fs *pflag.FlagSet) *CliConfig {
	args := &CliConfig{}
	fs.StringVar(&args.ConfigFile, "config", "", "Path to the config file")
	fs.BoolVarP(&args.Debug, "debug", "d", false, "Enable debug mode")
	fs.IntP("port", "p", DefaultPort, "Port to listen on")
	return args
}
