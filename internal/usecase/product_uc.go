package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"math/rand/v2"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/nfnt/resize"
	"github.com/rs/zerolog/log"

	"github.com/edouardlicn123/Hotel-furniture-company-site/internal/domain"
)

const (
	codePrefix      = "pc"
	codeDigits      = 9
	maxCodeAttempts = 20

	photosBucket = "products"
	thumbWidth   = 480
)

type ProductUC struct {
	Products   domain.ProductRepo
	Categories domain.CategoryRepo
	Storage    domain.FileStorage
}

func (uc *ProductUC) List(ctx context.Context, f domain.ProductFilter) ([]domain.Product, int64, error) {
	if f.PageSize <= 0 {
		f.PageSize = 10
	}
	return uc.Products.List(ctx, f)
}

func (uc *ProductUC) Get(ctx context.Context, id uint) (*domain.Product, error) {
	return uc.Products.FindByID(ctx, id)
}

// Create assigns a fresh product code, persists the uploaded photos and then
// the row. Files are written before the row commits: a mid-failure can orphan
// a file but never leaves a row pointing at a missing one.
func (uc *ProductUC) Create(ctx context.Context, p *domain.Product, uploads []domain.Upload) error {
	code, err := uc.GenerateCode(ctx)
	if err != nil {
		return err
	}
	p.Code = code

	names, err := uc.savePhotos(ctx, code, uploads)
	if err != nil {
		return err
	}
	p.SetPhotos(names)

	if err := uc.Products.Save(ctx, p); err != nil {
		uc.removePhotos(names)
		return err
	}
	return nil
}

// Update saves form changes. Submitting one or more files replaces the whole
// photo list; submitting none keeps it. Replacement batches get their own key
// namespace: the committed row's files are never overwritten or rolled back,
// so a failed save leaves no dangling reference.
func (uc *ProductUC) Update(ctx context.Context, p *domain.Product, uploads []domain.Upload) error {
	old := p.PhotoList()
	prefix := p.Code
	if len(uploads) > 0 {
		prefix = p.Code + "-" + uuid.NewString()[:8]
	}
	names, err := uc.savePhotos(ctx, prefix, uploads)
	if err != nil {
		return err
	}
	if len(names) > 0 {
		p.SetPhotos(names)
	}
	if err := uc.Products.Save(ctx, p); err != nil {
		if len(names) > 0 {
			uc.removePhotos(names)
		}
		return err
	}
	if len(names) > 0 {
		uc.removePhotos(old)
	}
	return nil
}

func (uc *ProductUC) Delete(ctx context.Context, id uint) error {
	p, err := uc.Products.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.Products.Delete(ctx, id); err != nil {
		return err
	}
	uc.removePhotos(p.PhotoList())
	return nil
}

// GenerateCode produces a unique "pc" + 9-digit code, retrying on collision
// up to maxCodeAttempts before giving up with ErrCodeExhausted. The
// check-then-insert is not atomic; the unique index on the column backstops
// the rare concurrent collision.
func (uc *ProductUC) GenerateCode(ctx context.Context) (string, error) {
	for i := 0; i < maxCodeAttempts; i++ {
		code := codePrefix + randomDigits(codeDigits)
		exists, err := uc.Products.ExistsByCode(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", domain.ErrCodeExhausted
}

func randomDigits(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte('0' + rand.IntN(10))
	}
	return string(b)
}

// savePhotos persists at most MaxProductPhotos uploads under keys derived
// from the given prefix, never the client filename. The cap applies to the
// raw list first; empty-named entries inside the capped window are then
// dropped. Returned names are in input order.
func (uc *ProductUC) savePhotos(ctx context.Context, prefix string, uploads []domain.Upload) ([]string, error) {
	if len(uploads) > domain.MaxProductPhotos {
		uploads = uploads[:domain.MaxProductPhotos]
	}
	names := make([]string, 0, len(uploads))
	for i, up := range uploads {
		if strings.TrimSpace(up.Name) == "" {
			continue
		}
		ext := strings.ToLower(filepath.Ext(up.Name))
		if ext == "" {
			ext = ".jpg"
		}
		name := fmt.Sprintf("%s-%d%s", prefix, i+1, ext)
		if _, err := uc.Storage.Save(ctx, photosBucket, name, up.Data); err != nil {
			uc.removePhotos(names)
			return nil, err
		}
		uc.saveThumb(ctx, name, up.Data)
		names = append(names, name)
	}
	return names, nil
}

// saveThumb writes a 480px-wide JPEG next to the original. Non-decodable
// uploads simply get no thumbnail.
func (uc *ProductUC) saveThumb(ctx context.Context, name string, data []byte) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return
	}
	small := resize.Resize(thumbWidth, 0, img, resize.Lanczos3)
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, small, &jpeg.Options{Quality: 80}); err != nil {
		return
	}
	if _, err := uc.Storage.Save(ctx, photosBucket, thumbName(name), buf.Bytes()); err != nil {
		log.Warn().Err(err).Str("photo", name).Msg("thumbnail write failed")
	}
}

func thumbName(name string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + "_thumb.jpg"
}

func (uc *ProductUC) removePhotos(names []string) {
	for _, n := range names {
		if err := uc.Storage.Remove(photosBucket, n); err != nil {
			log.Warn().Err(err).Str("photo", n).Msg("remove photo")
		}
		_ = uc.Storage.Remove(photosBucket, thumbName(n))
	}
}

// ResolveCategory maps a form category id to a nullable FK, tolerating an
// empty selection.
func (uc *ProductUC) ResolveCategory(ctx context.Context, raw string) (*uint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var id uint
	if _, err := fmt.Sscanf(raw, "%d", &id); err != nil {
		return nil, nil
	}
	cats, err := uc.Categories.All(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range cats {
		if c.ID == id {
			v := c.ID
			return &v, nil
		}
	}
	return nil, nil
}

// IsNotFound reports whether err is the repo's missing-row error.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
