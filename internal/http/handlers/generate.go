package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"listingcopy/internal/contracts"
	"listingcopy/internal/copywriter"
	"listingcopy/internal/domain"
	"listingcopy/internal/middleware"
)

type generateResponse struct {
	domain.GenerationResult
	RequestID string `json:"request_id,omitempty"`
}

type generateRequest struct {
	domain.ListingFacts
	Tone   string                   `json:"tone"`
	Length string                   `json:"length"`
	Images []domain.ImageAttachment `json:"images"`
}

// requestError is a failure to read the request itself, before any listing
// semantics are applied.
type requestError struct {
	status  int
	kind    string
	details []string
}

func (e *requestError) Error() string {
	return fmt.Sprintf("%s: %s", e.kind, strings.Join(e.details, "; "))
}

// Generate accepts listing facts as JSON (images base64 encoded) or as
// multipart/form-data (images as files) and returns one description.
func (a *App) Generate(w http.ResponseWriter, r *http.Request) {
	req, err := a.decodeGenerate(w, r)
	if err != nil {
		var reqErr *requestError
		if errors.As(err, &reqErr) {
			a.error(w, r, reqErr.status, reqErr.kind, reqErr.details...)
			return
		}
		a.error(w, r, http.StatusBadRequest, kindBadRequest)
		return
	}
	if len(req.Images) > a.MaxImages {
		a.error(w, r, http.StatusBadRequest, kindTooManyImages)
		return
	}

	in := copywriter.Input{
		Facts:  req.ListingFacts,
		Tone:   domain.ParseTone(req.Tone),
		Length: domain.ParseLength(req.Length),
		Images: req.Images,
	}
	description, err := a.Copywriter.Generate(r.Context(), in)
	resp := generateResponse{GenerationResult: domain.NewResult(description, err, middleware.LocaleFromContext(r.Context()))}
	if err != nil {
		resp.RequestID = middleware.RequestIDFromContext(r.Context())
		zerolog.Ctx(r.Context()).Warn().
			Err(err).
			Str("error_kind", string(resp.ErrorKind)).
			Msg("generate: request failed")
	}
	a.json(w, statusFor(resp.ErrorKind), resp)
}

// statusFor maps a generation outcome onto an HTTP status.
func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case "":
		return http.StatusOK
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindUpstream, domain.KindMalformedResponse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (a *App) decodeGenerate(w http.ResponseWriter, r *http.Request) (generateRequest, error) {
	r.Body = http.MaxBytesReader(w, r.Body, a.MaxUploadBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		return a.decodeMultipart(r)
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return generateRequest{}, bodyReadError(err)
	}
	if err := contracts.Validate(contracts.GenerateRequest, body); err != nil {
		var verr *contracts.ViolationError
		if errors.As(err, &verr) {
			return generateRequest{}, &requestError{status: http.StatusBadRequest, kind: kindBadRequest, details: verr.Violations}
		}
		return generateRequest{}, err
	}

	var req generateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return generateRequest{}, &requestError{status: http.StatusBadRequest, kind: kindBadRequest, details: []string{err.Error()}}
	}
	for i, img := range req.Images {
		if !isImage(img.MIMEType) {
			return generateRequest{}, &requestError{status: http.StatusBadRequest, kind: kindUnsupportedImage, details: []string{fmt.Sprintf("images[%d]", i)}}
		}
	}
	return req, nil
}

func (a *App) decodeMultipart(r *http.Request) (generateRequest, error) {
	if err := r.ParseMultipartForm(a.MaxUploadBytes); err != nil {
		return generateRequest{}, bodyReadError(err)
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	req := generateRequest{
		ListingFacts: domain.ListingFacts{
			Area:           r.FormValue("area"),
			Price:          r.FormValue("price"),
			Location:       r.FormValue("location"),
			Rooms:          r.FormValue("rooms"),
			Bathrooms:      r.FormValue("bathrooms"),
			Floor:          r.FormValue("floor"),
			AdditionalInfo: r.FormValue("additional_info"),
		},
		Tone:   r.FormValue("tone"),
		Length: r.FormValue("length"),
	}

	files := r.MultipartForm.File["images"]
	if len(files) > a.MaxImages {
		return generateRequest{}, &requestError{status: http.StatusBadRequest, kind: kindTooManyImages}
	}
	for _, fh := range files {
		img, err := readImage(fh)
		if err != nil {
			return generateRequest{}, err
		}
		req.Images = append(req.Images, img)
	}
	return req, nil
}

func readImage(fh *multipart.FileHeader) (domain.ImageAttachment, error) {
	f, err := fh.Open()
	if err != nil {
		return domain.ImageAttachment{}, fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return domain.ImageAttachment{}, fmt.Errorf("read %s: %w", fh.Filename, err)
	}

	mimeType, _, _ := mime.ParseMediaType(fh.Header.Get("Content-Type"))
	if !isImage(mimeType) {
		mimeType = http.DetectContentType(data)
	}
	if !isImage(mimeType) {
		return domain.ImageAttachment{}, &requestError{status: http.StatusBadRequest, kind: kindUnsupportedImage, details: []string{fh.Filename}}
	}
	return domain.ImageAttachment{MIMEType: mimeType, Data: data}, nil
}

func isImage(mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/")
}

func bodyReadError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return &requestError{status: http.StatusRequestEntityTooLarge, kind: kindPayloadTooLarge}
	}
	if errors.Is(err, multipart.ErrMessageTooLarge) {
		return &requestError{status: http.StatusRequestEntityTooLarge, kind: kindPayloadTooLarge}
	}
	return &requestError{status: http.StatusBadRequest, kind: kindBadRequest, details: []string{err.Error()}}
}
