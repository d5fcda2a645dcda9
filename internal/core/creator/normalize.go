// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package creator

// Normalize folds alternate column names into their canonical field.
//
// For every field in the alias table: when the canonical key is missing or
// null, the first present, non-null alias is copied into it; when neither is
// present the canonical key is set to "". Other keys, aliases included, are
// kept as they are. The input is never modified and a nil row stays nil.
func Normalize(row Row) Row {
	if row == nil {
		return nil
	}

	normalized := make(Row, len(row)+len(fieldAliases))
	for key, value := range row {
		normalized[key] = value
	}

	for field, aliases := range fieldAliases {
		if normalized[field] != nil {
			continue
		}
		normalized[field] = ""
		for _, alias := range aliases {
			if value := row[alias]; value != nil {
				normalized[field] = value
				break
			}
		}
	}

	return normalized
}
