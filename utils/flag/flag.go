/*
flag Package set up cli flags shared across the client binaries

Usage:

	Flags listed in this package are shared across boundaries
	For command dependent flags please define in their respective package

	Parse must be called from main after all packages registered their flags,
	registering-and-parsing inside init breaks the go test flag handling
*/

package flag

import (
	"flag"
)

var (
	IsDevelopment bool
	APIBase       string
	SessionFile   string
)

func init() {
	flag.BoolVar(&IsDevelopment, "dev", true, "set to true if the current run is for development. default value is true")
	flag.StringVar(&APIBase, "api_base", "http://localhost:9090/api", "base URL of the SocialNet backend API")
	flag.StringVar(&SessionFile, "session_file", "", "path of the persisted session file. empty means ~/.socialnet/session.json")
}

func Parse() {
	flag.Parse()
}
