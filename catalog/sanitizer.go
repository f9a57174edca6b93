// Package catalog turns untrusted /medicines payloads into the rows shown in
// the admin table, and drives the fetch-and-render cycle of that table.
package catalog

import "github.com/giygas/medicines-admin/entities"

// Sanitize extracts the medicines array from an arbitrary decoded payload.
// Anything that is not an object with a "medicines" array yields an empty
// list. Records are returned as-is; they are validated one by one when
// rendered so that one bad record cannot invalidate the others.
func Sanitize(payload any) []entities.MedicineRecord {
	obj, ok := payload.(map[string]any)
	if !ok {
		return []entities.MedicineRecord{}
	}

	medicines, ok := obj["medicines"].([]any)
	if !ok {
		return []entities.MedicineRecord{}
	}

	return medicines
}
