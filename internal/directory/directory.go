// Package directory loads the PIRG-to-approver mapping. The mapping is
// externally maintained reference data; it is read once per run and
// never written or cached across runs.
package directory

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"racs-notifier/internal/domain"
)

// Directory is a read-only PIRG-to-approver lookup.
type Directory struct {
	mappings map[string]domain.ApproverMapping
}

type mappingFile struct {
	PIRGs map[string]struct {
		ApproverName  string `yaml:"approver_name"`
		ApproverEmail string `yaml:"approver_email"`
	} `yaml:"pirgs"`
}

// Load reads an approver mapping file:
//
//	pirgs:
//	  labX:
//	    approver_name: Jane Doe
//	    approver_email: pi@x.edu
func Load(path string) (*Directory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file: %w", err)
	}

	var file mappingFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse mapping file: %w", err)
	}

	mappings := make(map[string]domain.ApproverMapping, len(file.PIRGs))
	for pirg, entry := range file.PIRGs {
		if entry.ApproverEmail == "" {
			return nil, fmt.Errorf("mapping for PIRG %q has no approver email", pirg)
		}
		mappings[pirg] = domain.ApproverMapping{
			PIRG:          pirg,
			ApproverName:  entry.ApproverName,
			ApproverEmail: entry.ApproverEmail,
		}
	}

	return &Directory{mappings: mappings}, nil
}

// Lookup returns the approver mapping for a PIRG, if one exists.
func (d *Directory) Lookup(pirg string) (domain.ApproverMapping, bool) {
	m, ok := d.mappings[pirg]
	return m, ok
}

// Len returns the number of known PIRGs.
func (d *Directory) Len() int {
	return len(d.mappings)
}
