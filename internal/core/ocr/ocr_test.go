package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage(t *testing.T, w, h int) image.Image {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.Black)
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodeImage(t *testing.T) {
	pngData := encodePNG(t, testImage(t, 40, 20))
	img, err := DecodeImage(pngData)
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())

	var jpg bytes.Buffer
	require.NoError(t, jpeg.Encode(&jpg, testImage(t, 30, 30), nil))
	_, err = DecodeImage(jpg.Bytes())
	require.NoError(t, err)
}

func TestDecodeImage_Invalid(t *testing.T) {
	_, err := DecodeImage(nil)
	assert.ErrorIs(t, err, ErrImageDecode)

	_, err = DecodeImage([]byte("definitely not an image"))
	assert.ErrorIs(t, err, ErrImageDecode)
}

func TestPrepareImage_Downscales(t *testing.T) {
	out, err := PrepareImage(testImage(t, 400, 100), 200)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())
}

func TestPrepareImage_KeepsSmallImages(t *testing.T) {
	out, err := PrepareImage(testImage(t, 120, 80), 200)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 120, img.Bounds().Dx())
	assert.Equal(t, 80, img.Bounds().Dy())
}

type stubProvider struct {
	got  []byte
	text string
	err  error
}

func (s *stubProvider) ExtractText(_ context.Context, data []byte) (*OCRResult, error) {
	s.got = data
	if s.err != nil {
		return nil, s.err
	}
	return &OCRResult{Text: s.text, Confidence: 1}, nil
}

func (s *stubProvider) GetProviderName() string { return "stub" }

func TestService_Recognize(t *testing.T) {
	stub := &stubProvider{text: "DOLIPRANE 1000 mg"}
	svc := NewService(stub, 100)

	var jpg bytes.Buffer
	require.NoError(t, jpeg.Encode(&jpg, testImage(t, 300, 150), nil))

	res, err := svc.Recognize(context.Background(), jpg.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "DOLIPRANE 1000 mg", res.Text)

	// The provider always receives a PNG within bounds.
	cfg, format, err := image.DecodeConfig(bytes.NewReader(stub.got))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.LessOrEqual(t, cfg.Width, 100)
	assert.Equal(t, "stub", svc.GetProviderName())
}

func TestService_RecognizeDecodeError(t *testing.T) {
	stub := &stubProvider{}
	_, err := NewService(stub, 0).Recognize(context.Background(), []byte{0x01, 0x02})
	assert.ErrorIs(t, err, ErrImageDecode)
	assert.Nil(t, stub.got)
}

func TestParseVisionResponse(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantText string
		wantErr  bool
	}{
		{
			name:     "full text annotation",
			body:     `{"responses":[{"fullTextAnnotation":{"text":"DOLIPRANE 1000 mg\n","pages":[{"confidence":0.8}]},"textAnnotations":[{"description":"ignored"}]}]}`,
			wantText: "DOLIPRANE 1000 mg\n",
		},
		{
			name:     "text annotations only",
			body:     `{"responses":[{"textAnnotations":[{"description":"SPASFON 80 mg"}]}]}`,
			wantText: "SPASFON 80 mg",
		},
		{
			name:     "nothing found",
			body:     `{"responses":[{}]}`,
			wantText: "",
		},
		{
			name:    "api error",
			body:    `{"responses":[{"error":{"code":3,"message":"Bad image data."}}]}`,
			wantErr: true,
		},
		{
			name:    "no responses",
			body:    `{"responses":[]}`,
			wantErr: true,
		},
		{
			name:    "garbage",
			body:    `<html>`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := parseVisionResponse([]byte(tt.body))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrRecognition)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantText, res.Text)
		})
	}
}

func TestGoogleVisionProvider_ExtractText(t *testing.T) {
	var got visionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.URL.Query().Get("key"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"responses":[{"fullTextAnnotation":{"text":"KARDEGIC 75 mg"}}]}`))
	}))
	defer server.Close()

	p := NewGoogleVisionProvider("secret")
	p.endpoint = server.URL

	res, err := p.ExtractText(context.Background(), []byte("img"))
	require.NoError(t, err)
	assert.Equal(t, "KARDEGIC 75 mg", res.Text)
	assert.Equal(t, 0.95, res.Confidence)
	require.Len(t, got.Requests, 1)
	assert.Equal(t, "DOCUMENT_TEXT_DETECTION", got.Requests[0].Features[0].Type)
	assert.Equal(t, []string{"fr"}, got.Requests[0].ImageContext.LanguageHints)
}

func TestGoogleVisionProvider_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	p := NewGoogleVisionProvider("secret")
	p.endpoint = server.URL

	_, err := p.ExtractText(context.Background(), []byte("img"))
	assert.ErrorIs(t, err, ErrRecognition)
}

func TestParseOCRSpaceResponse(t *testing.T) {
	res, err := parseOCRSpaceResponse([]byte(`{"ParsedResults":[{"ParsedText":"DOLIPRANE 1000 mg\r\n"},{"ParsedText":"SPASFON 80 mg"}],"OCRExitCode":1}`))
	require.NoError(t, err)
	assert.Equal(t, "DOLIPRANE 1000 mg\r\n\nSPASFON 80 mg", res.Text)

	res, err = parseOCRSpaceResponse([]byte(`{"ParsedResults":[],"OCRExitCode":1}`))
	require.NoError(t, err)
	assert.Empty(t, res.Text)

	_, err = parseOCRSpaceResponse([]byte(`{"IsErroredOnProcessing":true,"ErrorMessage":["Unable to recognize the file type"],"OCRExitCode":3}`))
	assert.ErrorIs(t, err, ErrRecognition)
	assert.Contains(t, err.Error(), "Unable to recognize")

	_, err = parseOCRSpaceResponse([]byte(`{"OCRExitCode":4}`))
	assert.ErrorIs(t, err, ErrRecognition)
}

func TestOCRSpaceProvider_ExtractText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "key", r.FormValue("apikey"))
		assert.Equal(t, "fre", r.FormValue("language"))
		_, header, err := r.FormFile("file")
		require.NoError(t, err)
		assert.Equal(t, "prescription.png", header.Filename)
		_, _ = w.Write([]byte(`{"ParsedResults":[{"ParsedText":"SMECTA 3 g"}],"OCRExitCode":1}`))
	}))
	defer server.Close()

	p := NewOCRSpaceProvider("key")
	p.endpoint = server.URL

	res, err := p.ExtractText(context.Background(), []byte("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "SMECTA 3 g", res.Text)
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(Options{Provider: "tesseract"})
	require.NoError(t, err)
	assert.Equal(t, "Tesseract OCR", p.GetProviderName())

	p, err = NewProvider(Options{})
	require.NoError(t, err)
	assert.IsType(t, &TesseractProvider{}, p)

	p, err = NewProvider(Options{Provider: "ocrspace", OCRSpaceAPIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "OCR.space", p.GetProviderName())

	p, err = NewProvider(Options{Provider: "google", GoogleVisionAPIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "Google Cloud Vision", p.GetProviderName())

	_, err = NewProvider(Options{Provider: "ocrspace"})
	assert.ErrorIs(t, err, ErrProviderUnavailable)

	_, err = NewProvider(Options{Provider: "abbyy"})
	assert.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestTesseractProvider_Missing(t *testing.T) {
	p := NewTesseractProvider("")
	p.tesseractPath = "tesseract-not-installed-here"

	_, err := p.ExtractText(context.Background(), []byte("img"))
	assert.ErrorIs(t, err, ErrProviderUnavailable)
	assert.Equal(t, "fra", p.language)
}
