package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"net/http"

	"github.com/jpfielding/dcmview/pkg/dcm"
	"github.com/jpfielding/dcmview/pkg/render"
	"github.com/jpfielding/dcmview/pkg/util"
)

const (
	uploadField = "file"
	// multipart parts beyond this are spooled to disk
	formMemory = 32 << 20
	// smaller images get the default placeholder size, larger ones are scaled down
	placeholderMin = 128
	placeholderMax = 512
)

// UploadResponse is the JSON body of the upload route. Error is set on
// failure; when the dataset parsed but its pixels did not, Error accompanies
// Metadata and a placeholder Image.
type UploadResponse struct {
	Image    string        `json:"image,omitempty"`
	Metadata *dcm.Metadata `json:"metadata,omitempty"`
	Error    string        `json:"error,omitempty"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, s.Config.maxUploadBytes())

	if err := r.ParseMultipartForm(formMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("upload exceeds %d MB", s.Config.MaxUploadMB))
			return
		}
		slog.DebugContext(ctx, "Unreadable multipart form", "error", err)
		writeError(w, http.StatusBadRequest, "No file part")
		return
	}
	defer r.MultipartForm.RemoveAll()

	f, fh, err := r.FormFile(uploadField)
	if err != nil {
		// a part sent with an empty filename is parsed as a plain value
		if _, ok := r.MultipartForm.Value[uploadField]; ok {
			writeError(w, http.StatusBadRequest, "No selected file")
			return
		}
		writeError(w, http.StatusBadRequest, "No file part")
		return
	}
	defer f.Close()
	if fh.Filename == "" {
		writeError(w, http.StatusBadRequest, "No selected file")
		return
	}

	buf, err := io.ReadAll(f)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("reading upload: %v", err))
		return
	}

	res, err := dcm.Decode(buf)
	if err != nil {
		s.logger().WarnContext(ctx, "Unreadable DICOM upload",
			slog.String("filename", fh.Filename),
			slog.Int("bytes", len(buf)),
			slog.String("error", err.Error()))
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	resp := UploadResponse{Metadata: &res.Metadata}
	if res.PixelErr != nil {
		s.logger().InfoContext(ctx, "Pixel data not rendered",
			slog.String("filename", fh.Filename),
			slog.String("error", res.PixelErr.Error()))
		resp.Error = res.PixelErr.Error()
		resp.Image, err = render.Base64Image(s.placeholder(res.Metadata, res.PixelErr))
	} else {
		resp.Image, err = render.Base64PNG(res.Bitmap, s.renderOptions().ForMetadata(res.Metadata))
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("ETag", `"`+util.ContentID(buf)+`"`)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) renderOptions() render.Options {
	return render.Options{
		MaxDim:            s.Config.MaxDim,
		InvertMonochrome1: s.Config.InvertMonochrome1,
	}
}

// placeholder sizes the error image like the image it replaces, bounded
func (s *Server) placeholder(m dcm.Metadata, cause error) *image.RGBA {
	limit := placeholderMax
	if s.Config.MaxDim > 0 {
		limit = min(limit, s.Config.MaxDim)
	}
	cols, _ := m.Columns.Value()
	rows, _ := m.Rows.Value()
	width, height := int(cols), int(rows)
	if width < placeholderMin || height < placeholderMin {
		width, height = 0, 0
	} else if width > limit || height > limit {
		if width >= height {
			width, height = limit, max(1, height*limit/width)
		} else {
			width, height = max(1, width*limit/height), limit
		}
	}
	return render.Placeholder(width, height, cause.Error())
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, UploadResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("Failed to write response", "error", err)
	}
}
