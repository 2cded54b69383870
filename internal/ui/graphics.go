package ui

import (
	"context"
	"image"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/qeesung/image2ascii/convert"
)

// Thumbnail art dimensions in terminal cells.
const (
	thumbnailWidth  = 36
	thumbnailHeight = 14

	thumbnailTimeout = 20 * time.Second
)

// ImageFetcher downloads and decodes a remote image.
type ImageFetcher interface {
	FetchImage(ctx context.Context, url string) (image.Image, error)
}

type thumbnailLoadedMsg struct {
	url string
	art string
	err error
}

// thumbnails caches rendered ASCII art by image URL. Failed loads are cached
// as empty art so they are not retried on every render.
type thumbnails struct {
	fetcher ImageFetcher
	art     map[string]string
	pending map[string]bool
}

func newThumbnails(fetcher ImageFetcher) *thumbnails {
	return &thumbnails{
		fetcher: fetcher,
		art:     map[string]string{},
		pending: map[string]bool{},
	}
}

func (t *thumbnails) enabled() bool {
	return t != nil && t.fetcher != nil
}

// request returns a command loading url unless it is cached or in flight.
func (t *thumbnails) request(url string) tea.Cmd {
	url = strings.TrimSpace(url)
	if !t.enabled() || url == "" || t.pending[url] {
		return nil
	}
	if _, ok := t.art[url]; ok {
		return nil
	}
	t.pending[url] = true
	fetcher := t.fetcher
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), thumbnailTimeout)
		defer cancel()
		img, err := fetcher.FetchImage(ctx, url)
		if err != nil {
			return thumbnailLoadedMsg{url: url, err: err}
		}
		return thumbnailLoadedMsg{url: url, art: convertToASCII(img, thumbnailWidth, thumbnailHeight)}
	}
}

func (t *thumbnails) store(msg thumbnailLoadedMsg) {
	delete(t.pending, msg.url)
	t.art[msg.url] = msg.art
}

// view returns the art for url, a loading placeholder, or "" when disabled or failed.
func (t *thumbnails) view(url string) string {
	if !t.enabled() || strings.TrimSpace(url) == "" {
		return ""
	}
	if art, ok := t.art[strings.TrimSpace(url)]; ok {
		return art
	}
	return HelpDescStyle.Render("loading image…")
}

// convertToASCII converts an image to colored ASCII art.
func convertToASCII(img image.Image, targetWidth, targetHeight int) string {
	converter := convert.NewImageConverter()

	opts := convert.DefaultOptions
	opts.FixedWidth = targetWidth
	opts.FixedHeight = targetHeight
	opts.Colored = true
	opts.Ratio = 0.5 // terminal cells are about twice as tall as wide

	return strings.TrimRight(converter.Image2ASCIIString(img, &opts), "\n")
}
