// Package testing runs the CloudWatch Logs emulator inside Go tests.
//
// # Basic Usage
//
//	func TestShipper(t *testing.T) {
//	    logs := mwtesting.New(t)
//	    logs.CreateGroup("app")
//	    logs.CreateStream("app", "web")
//
//	    shipper := NewShipper(logs.URL())
//	    shipper.Send("hello")
//
//	    logs.AssertEventCount("app", "web", 1)
//	}
//
// The emulator listens on an httptest.Server and is shut down automatically
// when the test completes. Options adjust the configuration before start:
//
//	logs := mwtesting.New(t,
//	    mwtesting.WithAlreadyExistsStatus(400),
//	    mwtesting.WithSeed(config.SeedGroup{Name: "preloaded"}),
//	)
package testing
