package ocr

import "errors"

// Fatal scan errors. Any of them aborts a scan before extraction starts.
var (
	ErrImageDecode    = errors.New("image could not be decoded")
	ErrRecognition    = errors.New("text recognition failed")
	ErrNoTextDetected = errors.New("no text detected")
)
