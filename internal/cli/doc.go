// Package cli implements the netbwmon command-line interface.
//
// The root command runs the dashboard; subcommands cover the chores around
// it:
//
//	netbwmon [flags]          - Live RX/TX graphs for one interface
//	netbwmon interfaces       - Table of interfaces and their counters
//	netbwmon config init|set  - Create or edit .netbwmon.yaml
//	netbwmon doctor           - Pre-flight checks
//	netbwmon version          - Build information
//	netbwmon completion       - Shell completion scripts
//
// Configuration is layered: defaults, then the config file, then NETBWMON_*
// environment variables, then flags that were set explicitly.
package cli
