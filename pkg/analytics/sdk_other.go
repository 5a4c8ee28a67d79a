//go:build !(js && wasm)

package analytics

type nopSDK struct{}

func newSDK() SDK {
	return nopSDK{}
}

func (nopSDK) Init(string, Options) error {
	return ErrSDKUnavailable
}
