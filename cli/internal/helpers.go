package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/devilmonastery/warehouse/internal/client"
	"github.com/devilmonastery/warehouse/internal/domain/entities"
	"github.com/devilmonastery/warehouse/internal/pkg/timeutil"
)

// FormatError turns an error into the message shown to the user
func FormatError(err error) string {
	var netErr *client.NetworkError
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return fmt.Sprintf("the warehouse API at %s did not respond in time", netErr.URL)
		}
		return fmt.Sprintf("cannot reach the warehouse API at %s: %v", netErr.URL, netErr.Err)
	}

	if apiErr, ok := client.AsAPIError(err); ok {
		if apiErr.IsUnauthorized() {
			return "not logged in or session expired; run 'warehouse auth login'"
		}
		fields := apiErr.FieldErrors()
		if len(fields) == 0 {
			return apiErr.Error()
		}
		var b strings.Builder
		b.WriteString(apiErr.DisplayMessage(fmt.Sprintf("request rejected with status %d", apiErr.StatusCode)))
		for _, name := range sortedKeys(fields) {
			fmt.Fprintf(&b, "\n  %s: %s", name, strings.Join(fields[name], "; "))
		}
		return b.String()
	}

	return err.Error()
}

// readPayload decodes a JSON document from path, or from stdin when path is "-"
func readPayload(path string, stdin io.Reader, v any) error {
	if path == "" {
		return fmt.Errorf("a JSON payload is required; pass --file PATH or --file - for stdin")
	}

	var r io.Reader
	if path == "-" {
		r = stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open payload: %w", err)
		}
		defer f.Close()
		r = f
	}

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("failed to parse payload %s: %w", path, err)
	}
	return nil
}

// parseID parses a positive integer resource id
func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: must be a positive integer", arg)
	}
	return id, nil
}

// parseTriState maps "", "true" and "false" to nil, &true and &false
func parseTriState(name, value string) (*bool, error) {
	if value == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return nil, fmt.Errorf("--%s must be true or false, got %q", name, value)
	}
	return &b, nil
}

// parseOptionalType validates a transaction type flag, empty meaning unset
func parseOptionalType(value string) (entities.TransactionType, error) {
	if value == "" {
		return "", nil
	}
	return entities.ParseTransactionType(value)
}

// resolveDateRange expands relative --start-date/--end-date values in the configured timezone
func resolveDateRange(cliCtx *CliContext, start, end string) (string, string, error) {
	return timeutil.ResolveRange(start, end, time.Now(), cliCtx.Config.App.Timezone)
}

func formatDecimal(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func formatBool(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// formatDuration formats a duration in a human-friendly way (e.g., "2 hours and 5 minutes")
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = -d
	}

	days := int(d.Hours() / 24)
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	var parts []string
	appendUnit := func(n int, unit string) {
		switch {
		case n == 1:
			parts = append(parts, "1 "+unit)
		case n > 1:
			parts = append(parts, fmt.Sprintf("%d %ss", n, unit))
		}
	}
	appendUnit(days, "day")
	appendUnit(hours, "hour")
	appendUnit(minutes, "minute")
	if len(parts) == 0 {
		appendUnit(seconds, "second")
	}

	switch len(parts) {
	case 0:
		return "0 seconds"
	case 1:
		return parts[0]
	default:
		return strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1]
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
