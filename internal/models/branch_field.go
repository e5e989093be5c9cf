package models

import (
	"bytes"
	"encoding/json"
)

// BranchField accepts either a branch id or a nested branch object. List
// serializers send the id, detail serializers nest the whole branch.
type BranchField struct {
	ID     int64
	Branch *Branch
}

func (f *BranchField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = BranchField{}
		return nil
	}
	if len(data) > 0 && data[0] == '{' {
		var b Branch
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*f = BranchField{ID: b.ID, Branch: &b}
		return nil
	}
	var id int64
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	*f = BranchField{ID: id}
	return nil
}

func (f BranchField) MarshalJSON() ([]byte, error) {
	if f.Branch != nil {
		return json.Marshal(f.Branch)
	}
	return json.Marshal(f.ID)
}
