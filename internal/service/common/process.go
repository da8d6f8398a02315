//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mitchellh/go-ps"
)

// FindRunningProcesses returns which of the given executable names are running now.
// Names are matched case-insensitively; the result is sorted and has no duplicates.
func FindRunningProcesses(names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}

	wanted := make(map[string]string, len(names))
	for _, name := range names {
		wanted[strings.ToLower(name)] = name
	}

	processList, err := ps.Processes()
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}

	found := make(map[string]struct{}, len(names))

	for _, process := range processList {
		if name, ok := wanted[strings.ToLower(process.Executable())]; ok {
			found[name] = struct{}{}
		}
	}

	result := make([]string, 0, len(found))
	for name := range found {
		result = append(result, name)
	}

	sort.Strings(result)

	return result, nil
}
