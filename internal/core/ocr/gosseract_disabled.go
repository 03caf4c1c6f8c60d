//go:build !gosseract

package ocr

import "fmt"

func newGosseractProvider(string) (Provider, error) {
	return nil, fmt.Errorf("%w: built without the gosseract tag", ErrProviderUnavailable)
}
