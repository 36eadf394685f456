// internal/platform/config/help.go
package config

import (
	"fmt"
	"io"
	"runtime"
)

// EnvHelp se muestra en el help largo del comando raíz.
const EnvHelp = `ENVIRONMENT VARIABLES:
  Every setting can come from a YAML file (--config), from variables with the
  FRAUDTECT_ prefix, or from flags. Flags override environment, which
  overrides the file.

  FRAUDTECT_LOG_LEVEL=debug           Log level
  FRAUDTECT_MODEL_PATH=/path.json     Classifier artifact
  FRAUDTECT_MAX_INPUT_BYTES=100000    Text input limit
  FRAUDTECT_RDAP_URL=https://...%s    RDAP endpoint template
  FRAUDTECT_VT_API_KEY=...            VirusTotal API key (deep scan)
  FRAUDTECT_URLSCAN_API_KEY=...       urlscan.io API key (deep scan)
  FRAUDTECT_HISTORY_BACKEND=sqlite    file | sqlite | none
  FRAUDTECT_HISTORY_DIR=logs          JSONL history directory
  FRAUDTECT_SERVER_ADDR=:8080         API listen address
  FRAUDTECT_OUTPUT=json               table | json

  Per-service (VT or URLSCAN):
  FRAUDTECT_VT_ENABLED=false
  FRAUDTECT_URLSCAN_MAX_ATTEMPTS=10
`

// PrintVersion escribe la información de versión en w.
func PrintVersion(w io.Writer, version, commit, date string) {
	fmt.Fprintf(w, "FrauDTect %s\n", version)
	fmt.Fprintf(w, "  Commit:  %s\n", commit)
	fmt.Fprintf(w, "  Built:   %s\n", date)
	fmt.Fprintf(w, "  Go:      %s\n", getGoVersion())
}

func getGoVersion() string {
	return runtime.Version()
}
