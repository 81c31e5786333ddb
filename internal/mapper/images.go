package mapper

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/supplyline/catsync/internal/catalog"
)

// ImageCacheSize bounds the URL-digest dedup cache. One entry per attached
// image URL.
const ImageCacheSize = 4096

// ImageSyncer attaches remote image URLs to local products, deduplicating by
// URL digest so repeated runs do not re-attach the same image.
type ImageSyncer struct {
	media catalog.MediaStore
	seen  *lru.Cache[string, struct{}]
}

func NewImageSyncer(media catalog.MediaStore) (*ImageSyncer, error) {
	cache, err := lru.New[string, struct{}](ImageCacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating image cache: %w", err)
	}
	return &ImageSyncer{media: media, seen: cache}, nil
}

func urlDigest(productID uint64, url string) string {
	sum := sha1.Sum([]byte(fmt.Sprintf("%d:%s", productID, url)))
	return hex.EncodeToString(sum[:])
}

// SyncImages attaches the main image (featured) and gallery to the product.
// Already-attached URLs are skipped. Returns the number of newly attached
// images.
func (s *ImageSyncer) SyncImages(ctx context.Context, productID uint64, mainURL string, gallery []string) (int, error) {
	// Warm the cache from persisted state so restarts stay idempotent.
	existing, err := s.media.ListImageURLs(ctx, productID)
	if err != nil {
		return 0, fmt.Errorf("listing product images: %w", err)
	}
	for _, url := range existing {
		s.seen.Add(urlDigest(productID, url), struct{}{})
	}

	attached := 0
	attach := func(url string, featured bool) error {
		if url == "" {
			return nil
		}
		digest := urlDigest(productID, url)
		if _, ok := s.seen.Get(digest); ok {
			return nil
		}
		if err := s.media.AttachImage(ctx, productID, url, featured); err != nil {
			return fmt.Errorf("attaching image: %w", err)
		}
		s.seen.Add(digest, struct{}{})
		attached++
		return nil
	}

	if err := attach(mainURL, true); err != nil {
		return attached, err
	}
	for _, url := range gallery {
		if err := attach(url, false); err != nil {
			return attached, err
		}
	}
	return attached, nil
}
