package pdf

import "errors"

var (
	// ErrMalformedAsset indicates a font or declared logo could not be loaded.
	ErrMalformedAsset = errors.New("malformed document asset")
	// ErrRenderFailed indicates the layout engine rejected the document.
	ErrRenderFailed = errors.New("document render failed")
	// ErrUnsupportedText indicates text with characters the document fonts cannot draw.
	ErrUnsupportedText = errors.New("text not supported by document font")
)
