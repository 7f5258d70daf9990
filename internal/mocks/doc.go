// Package mocks provides centralized mock implementations for testing.
//
// Each mock implements one of the application's interfaces with function
// fields for per-test behavior plus a map-backed default implementation, so
// test files share one mock instead of redefining inline fakes.
//
// Usage:
//
//	import "github.com/parcelo/parcelo-api/internal/mocks"
//
//	func TestSomething(t *testing.T) {
//	    users := mocks.NewMockUserStore()
//	    users.GetByEmailFn = func(ctx context.Context, email string) (*domain.User, error) {
//	        return nil, store.ErrUserNotFound
//	    }
//
//	    // Use the mock in your test...
//	}
//
// When adding a new mock to this package:
//  1. Create a new file named after the interface being mocked
//  2. Implement the mock struct with function fields for each interface method
//  3. Provide a sensible map-backed default implementation
package mocks
