// Package provider implements translation backends.
package provider

import "github.com/ZaguanLabs/sitetrans"

// Provider is the interface for translation backends.
// This is an alias to the main package interface for convenience.
type Provider = sitetrans.Provider

// Request is an alias to the main package type.
type Request = sitetrans.Request
