// Package processor parses HTML documents, extracts their translatable
// units and writes translations back at the exact original locations.
package processor

import "github.com/ZaguanLabs/sitetrans"

// Unit is an alias to the main package type.
type Unit = sitetrans.Unit
