package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Links, Theme and Socials are stored as JSONB columns.

func (l Links) Value() (driver.Value, error) { return json.Marshal(l) }

func (l *Links) Scan(src any) error { return scanJSON(src, l) }

func (t Theme) Value() (driver.Value, error) { return json.Marshal(t) }

func (t *Theme) Scan(src any) error { return scanJSON(src, t) }

func (s Socials) Value() (driver.Value, error) { return json.Marshal(s) }

func (s *Socials) Scan(src any) error { return scanJSON(src, s) }

func scanJSON(src, dst any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("cannot scan %T into jsonb", src)
	}
}
