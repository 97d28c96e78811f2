// Package loader registers HTTP features and loads the enabled ones into the
// Fiber app.
//
// A feature reports its name, whether it is enabled and how to mount itself:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The start command registers 'reconcile' and 'integrity'. LoadAll stops at
// the first feature that fails to load, which usually means its history
// migration failed.
package loader
