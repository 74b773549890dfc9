package progressdoc

import (
	"encoding/json"
	"fmt"

	"github.com/heartmarshall/myenglish-progress/internal/domain"
)

type migration struct {
	to    string
	apply func(top RawObject) error
}

// migrations maps a document version to the step that upgrades it.
var migrations = map[string]migration{
	"1.0": {to: "2.0", apply: migrateV1},
}

// Migrate upgrades top in place to domain.DocumentVersion and returns the
// original version when a migration ran. Missing, empty and unknown
// versions fail closed with domain.ErrMigration.
func Migrate(top RawObject) (string, error) {
	raw, ok := top["version"]
	if !ok {
		return "", fmt.Errorf("%w: missing version", domain.ErrMigration)
	}

	var version string
	if err := json.Unmarshal(raw, &version); err != nil {
		return "", fmt.Errorf("%w: version is not a string: %s", domain.ErrMigration, raw)
	}
	if version == "" {
		return "", fmt.Errorf("%w: missing version", domain.ErrMigration)
	}

	from := version
	for version != domain.DocumentVersion {
		m, ok := migrations[version]
		if !ok {
			return "", fmt.Errorf("%w: unsupported version %q", domain.ErrMigration, version)
		}
		if err := m.apply(top); err != nil {
			return "", fmt.Errorf("%w: %s to %s: %w", domain.ErrMigration, version, m.to, err)
		}
		version = m.to
		top["version"], _ = json.Marshal(version)
	}

	if from == version {
		return "", nil
	}
	return from, nil
}

// migrateV1 upgrades the browser-era layout, which named the learner
// userId. userId itself stays in the document as an unknown field.
func migrateV1(top RawObject) error {
	if id, ok := top["userId"]; ok {
		if _, exists := top["learnerId"]; !exists {
			top["learnerId"] = id
		}
	}
	return nil
}
