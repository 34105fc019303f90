package services

import (
	"bytes"
	"context"
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	_ "image/jpeg"
	_ "image/png"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"gorm.io/gorm"

	userrepo "github.com/foodgram/foodgram-backend/internal/data/repos/user"
	types "github.com/foodgram/foodgram-backend/internal/domain"
	"github.com/foodgram/foodgram-backend/internal/pkg/logger"
	"github.com/foodgram/foodgram-backend/internal/platform/storage"
)

type AvatarService interface {
	SetFromImage(ctx context.Context, tx *gorm.DB, user *types.User, raw []byte) error
	GenerateInitialsAvatar(user *types.User) (bytes.Buffer, error)
	SetGenerated(ctx context.Context, tx *gorm.DB, user *types.User) error
	Remove(ctx context.Context, tx *gorm.DB, user *types.User) error
}

type avatarService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo userrepo.UserRepo
	media    storage.MediaStore

	bgColors []color.NRGBA
	fontFace font.Face
}

func NewAvatarService(db *gorm.DB, log *logger.Logger, userRepo userrepo.UserRepo, media storage.MediaStore) (AvatarService, error) {
	serviceLog := log.With("service", "AvatarService")

	fontPath := strings.TrimSpace(os.Getenv("AVATAR_FONT"))
	var face font.Face
	if fontPath != "" {
		loaded, err := loadFontFace(fontPath, 206)
		if err != nil {
			return nil, fmt.Errorf("load avatar font: %w", err)
		}
		face = loaded
	} else {
		serviceLog.Warn("AVATAR_FONT not set; generated avatars will be plain circles")
	}

	return &avatarService{
		db:       db,
		log:      serviceLog,
		userRepo: userRepo,
		media:    media,
		bgColors: defaultAvatarColors(),
		fontFace: face,
	}, nil
}

func defaultAvatarColors() []color.NRGBA {
	return []color.NRGBA{
		{R: 0xE5, G: 0x39, B: 0x35, A: 0xFF},
		{R: 0x8E, G: 0x24, B: 0xAA, A: 0xFF},
		{R: 0x39, G: 0x49, B: 0xAB, A: 0xFF},
		{R: 0x03, G: 0x9B, B: 0xE5, A: 0xFF},
		{R: 0x00, G: 0x89, B: 0x7B, A: 0xFF},
		{R: 0x7C, G: 0xB3, B: 0x42, A: 0xFF},
		{R: 0xFB, G: 0x8C, B: 0x00, A: 0xFF},
		{R: 0x6D, G: 0x4C, B: 0x41, A: 0xFF},
	}
}

// pickColor is deterministic so the same user keeps the same background
// across regenerations.
func (as *avatarService) pickColor(user *types.User) color.NRGBA {
	h := fnv.New32a()
	_, _ = h.Write([]byte(user.Username))
	return as.bgColors[int(h.Sum32())%len(as.bgColors)]
}

func (as *avatarService) GenerateInitialsAvatar(user *types.User) (bytes.Buffer, error) {
	const size = 512

	dc := gg.NewContext(size, size)
	dc.DrawCircle(float64(size)/2, float64(size)/2, float64(size)/2)
	dc.Clip()

	dc.SetColor(as.pickColor(user))
	dc.DrawRectangle(0, 0, float64(size), float64(size))
	dc.Fill()

	if as.fontFace != nil {
		initials := computeInitials(user.FirstName, user.LastName)
		dc.SetFontFace(as.fontFace)
		tw, th := dc.MeasureString(initials)
		cx, cy := float64(size)/2, float64(size)/2
		dc.SetColor(color.White)
		dc.DrawString(initials, cx-(tw/2), cy+(th/2)-10)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return buf, fmt.Errorf("encode avatar png: %w", err)
	}
	return buf, nil
}

func (as *avatarService) SetGenerated(ctx context.Context, tx *gorm.DB, user *types.User) error {
	buf, err := as.GenerateInitialsAvatar(user)
	if err != nil {
		return err
	}
	return as.replaceAvatar(ctx, tx, user, buf.Bytes())
}

func (as *avatarService) SetFromImage(ctx context.Context, tx *gorm.DB, user *types.User, raw []byte) error {
	processed, err := processUploadedAvatar(raw, 512)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return as.replaceAvatar(ctx, tx, user, processed.Bytes())
}

func (as *avatarService) replaceAvatar(ctx context.Context, tx *gorm.DB, user *types.User, png []byte) error {
	oldKey := strings.TrimSpace(user.AvatarMediaKey)

	// Versioned key so a CDN never serves a stale avatar.
	newKey := fmt.Sprintf("avatars/%s/%d.png", user.ID.String(), time.Now().UnixNano())
	if err := as.media.Upload(ctx, newKey, "image/png", bytes.NewReader(png)); err != nil {
		return fmt.Errorf("upload avatar: %w", err)
	}

	user.AvatarMediaKey = newKey
	user.AvatarURL = as.media.PublicURL(newKey)
	if err := as.userRepo.UpdateAvatarFields(ctx, tx, user.ID, newKey, user.AvatarURL); err != nil {
		return fmt.Errorf("persist avatar fields: %w", err)
	}

	if oldKey != "" && oldKey != newKey {
		if err := as.media.Delete(ctx, oldKey); err != nil {
			as.log.Warn("failed to delete old avatar", "key", oldKey, "error", err)
		}
	}
	return nil
}

func (as *avatarService) Remove(ctx context.Context, tx *gorm.DB, user *types.User) error {
	oldKey := strings.TrimSpace(user.AvatarMediaKey)
	if err := as.userRepo.UpdateAvatarFields(ctx, tx, user.ID, "", ""); err != nil {
		return fmt.Errorf("clear avatar fields: %w", err)
	}
	user.AvatarMediaKey = ""
	user.AvatarURL = ""

	if oldKey != "" {
		if err := as.media.Delete(ctx, oldKey); err != nil {
			as.log.Warn("failed to delete avatar object", "key", oldKey, "error", err)
		}
	}
	return nil
}

func processUploadedAvatar(raw []byte, size int) (bytes.Buffer, error) {
	var out bytes.Buffer

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return out, fmt.Errorf("decode image: %w", err)
	}

	// Center-crop to square.
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	side := w
	if h < w {
		side = h
	}
	x0 := b.Min.X + (w-side)/2
	y0 := b.Min.Y + (h-side)/2

	cropRect := image.Rect(0, 0, side, side)
	cropped := image.NewRGBA(cropRect)
	draw.Draw(cropped, cropRect, img, image.Point{X: x0, Y: y0}, draw.Src)

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), cropped, cropped.Bounds(), draw.Over, nil)

	dc := gg.NewContext(size, size)
	dc.DrawCircle(float64(size)/2, float64(size)/2, float64(size)/2)
	dc.Clip()
	dc.DrawImage(dst, 0, 0)

	if err := dc.EncodePNG(&out); err != nil {
		return out, fmt.Errorf("encode png: %w", err)
	}
	return out, nil
}

func loadFontFace(path string, points float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{Size: points}), nil
}

func computeInitials(first, last string) string {
	var sb strings.Builder
	if r, size := utf8.DecodeRuneInString(strings.TrimSpace(first)); size > 0 && r != utf8.RuneError {
		sb.WriteString(strings.ToUpper(string(r)))
	}
	if r, size := utf8.DecodeRuneInString(strings.TrimSpace(last)); size > 0 && r != utf8.RuneError {
		sb.WriteString(strings.ToUpper(string(r)))
	}
	if sb.Len() == 0 {
		return "?"
	}
	return sb.String()
}
