package httpapp

import (
	"bytes"
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/dhowden/tag"
	"github.com/go-chi/chi/v5"

	"github.com/cesargomez89/mediacache/internal/constants"
)

// Play serves the audio bytes for a media id. Any failure is a 204.
func (h *Handler) Play(w http.ResponseWriter, r *http.Request) {
	h.serveMedia(w, r, "audio", h.Fetcher.Audio, audioContentType)
}

func (h *Handler) Thumbnail(w http.ResponseWriter, r *http.Request) {
	h.serveMedia(w, r, "thumbnail", h.Fetcher.Thumbnail, http.DetectContentType)
}

type fetchFunc func(ctx context.Context, id string) ([]byte, error)

func (h *Handler) serveMedia(w http.ResponseWriter, r *http.Request, kind string, fetch fetchFunc, sniff func([]byte) string) {
	id := chi.URLParam(r, "id")

	data, err := fetch(r.Context(), id)
	if err != nil {
		h.Logger.WithMedia(kind, id).Warn("No bytes available", "error", err)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if len(data) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", sniff(data))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// audioContentType identifies the container from its header bytes, falling
// back to the generic sniffer for streams tag does not know.
func audioContentType(data []byte) string {
	format, fileType, err := tag.Identify(bytes.NewReader(data))
	if err == nil {
		switch fileType {
		case tag.FLAC:
			return constants.MimeTypeFLAC
		case tag.OGG:
			return constants.MimeTypeOGG
		case tag.MP3:
			return constants.MimeTypeMP3
		case tag.M4A, tag.M4B, tag.M4P, tag.ALAC:
			return constants.MimeTypeMP4
		}
		if format == tag.MP4 {
			return constants.MimeTypeMP4
		}
	}

	detected := http.DetectContentType(data)
	switch {
	case strings.HasPrefix(detected, "video/webm"):
		return constants.MimeTypeWebM
	case strings.HasPrefix(detected, "audio/"):
		return detected
	default:
		return constants.MimeTypeOctetStream
	}
}
