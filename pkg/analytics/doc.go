// Package analytics bootstraps the PostHog browser SDK and relays its traffic.
//
// The SDK only makes sense in the browser, so a [Handle] does nothing unless
// the binary was built for GOOS=js. There, the first [Handle.Init] looks up
// PUBLIC_POSTHOG_KEY from the public environment and starts the SDK in the
// background. A missing key or a failing SDK leaves the handle disabled with a
// single warning in the log; callers never see an error.
//
//	func main() {
//	    analytics.InitPosthog()
//	    select {}
//	}
//
// The SDK talks to the same origin at [RelayPath]. On the server, [Relay]
// forwards that path to PostHog's ingestion and asset hosts.
package analytics
