package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/sunchiroshop/smart-menu-for-thai-res-NZ/internal/ai"
	"github.com/sunchiroshop/smart-menu-for-thai-res-NZ/internal/menu"
	"github.com/sunchiroshop/smart-menu-for-thai-res-NZ/internal/storage"
	"github.com/sunchiroshop/smart-menu-for-thai-res-NZ/internal/translate"
)

const maxFileBytes = 8 << 20

var imageExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".webp": true, ".pdf": true,
}

var textExts = map[string]bool{
	".txt": true, ".md": true, ".csv": true, ".json": true,
}

// Owners answers whether a user owns a restaurant.
type Owners interface {
	IsOwner(ctx context.Context, restaurantID, userID string) (bool, error)
}

// Translator translates parsed item names. Satisfied by the
// translation service.
type Translator interface {
	TranslateBatch(ctx context.Context, texts []string, sourceLang, targetLang string) ([]string, error)
}

type Service struct {
	repo       Repository
	ai         ai.Client
	translator Translator
	storage    *storage.R2Client
	owners     Owners
	httpClient *http.Client
}

func NewService(repo Repository, aiClient ai.Client, translator Translator, store *storage.R2Client, owners Owners) *Service {
	return &Service{
		repo:       repo,
		ai:         aiClient,
		translator: translator,
		storage:    store,
		owners:     owners,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// --------------------------------------------------
// Upload
// --------------------------------------------------

// Upload stores a menu file and queues it for the worker.
func (s *Service) Upload(ctx context.Context, restaurantID, userID, targetLanguage string, file *multipart.FileHeader) (*Ingestion, error) {
	owned, err := s.owners.IsOwner(ctx, restaurantID, userID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, errors.New("restaurant does not belong to this account")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !imageExts[ext] && !textExts[ext] {
		return nil, fmt.Errorf("unsupported file type %q", ext)
	}
	if targetLanguage != "" && !translate.IsSupportedLanguage(targetLanguage) {
		return nil, fmt.Errorf("unsupported target language %q", targetLanguage)
	}

	key := fmt.Sprintf("menu-uploads/%s/%s%s", restaurantID, uuid.New().String(), ext)
	url, err := storage.UploadMultipartFile(ctx, s.storage, key, file, maxFileBytes, append(keys(imageExts), keys(textExts)...))
	if err != nil {
		return nil, err
	}

	ing := &Ingestion{
		RestaurantID:   restaurantID,
		FileURL:        url,
		FileName:       file.Filename,
		FileType:       strings.TrimPrefix(ext, "."),
		TargetLanguage: targetLanguage,
		Status:         StatusUploaded,
	}
	if err := s.repo.Insert(ctx, ing); err != nil {
		return nil, err
	}
	return ing, nil
}

func keys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func (s *Service) Get(ctx context.Context, id int, restaurantID string) (*Ingestion, error) {
	ing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if restaurantID != "" && ing.RestaurantID != restaurantID {
		return nil, ErrNotFound
	}
	return ing, nil
}

func (s *Service) List(ctx context.Context, restaurantID, userID string) ([]*Ingestion, error) {
	owned, err := s.owners.IsOwner(ctx, restaurantID, userID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, errors.New("restaurant does not belong to this account")
	}
	return s.repo.ListByRestaurant(ctx, restaurantID)
}

func (s *Service) Retry(ctx context.Context, id int) error {
	return s.repo.Retry(ctx, id)
}

// --------------------------------------------------
// Worker
// --------------------------------------------------

func (s *Service) extractText(ctx context.Context, ing *Ingestion) (string, error) {
	if textExts["."+ing.FileType] {
		resp, err := s.httpClient.Get(ing.FileURL)
		if err != nil {
			return "", err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(io.LimitReader(resp.Body, maxFileBytes))
		if err != nil {
			return "", err
		}
		if !utf8.Valid(data) {
			return "", errors.New("file is not valid UTF-8 text")
		}
		return string(data), nil
	}

	if !s.ai.Configured() {
		return "", errors.New("menu extraction needs the AI client configured")
	}
	return s.ai.ChatWithImage(ctx, ai.BuildMenuExtractionPrompt(), ing.FileURL)
}

// ProcessOne claims and processes a single pending upload. Returns
// false when the queue is empty.
func (s *Service) ProcessOne(ctx context.Context) (bool, error) {
	ing, err := s.repo.FetchPending(ctx)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := s.process(ctx, ing); err != nil {
		if serr := s.repo.SetStatus(ctx, ing.ID, StatusFailed, err.Error()); serr != nil {
			log.Printf("ingestion %d: recording failure: %v", ing.ID, serr)
		}
		return true, err
	}
	return true, nil
}

func (s *Service) process(ctx context.Context, ing *Ingestion) error {
	text, err := s.extractText(ctx, ing)
	if err != nil {
		return err
	}

	items := ParseMenuText(text)
	if len(items) == 0 {
		return errors.New("no menu items found in file")
	}

	ing.RawText = text
	ing.Items = items

	if ing.TargetLanguage != "" {
		names := make([]string, len(items))
		for i, item := range items {
			names[i] = item.Name
		}
		translated, err := s.translator.TranslateBatch(ctx, names, "auto", ing.TargetLanguage)
		if err == nil && len(translated) == len(items) {
			ing.TranslatedItems = make([]ParsedItem, len(items))
			for i, item := range items {
				ing.TranslatedItems[i] = ParsedItem{Name: translated[i], Price: item.Price}
			}
		}
	}

	base := strings.TrimRight(os.Getenv("PUBLIC_MENU_BASE_URL"), "/")
	if base != "" {
		qr, err := menu.GenerateQR(fmt.Sprintf("%s/menu/%s", base, ing.RestaurantID), 512)
		if err == nil {
			ing.QRCode = qr
		}
	}

	return s.repo.SaveResult(ctx, ing)
}

// RunWorker polls for uploads until ctx is cancelled. Failures are
// logged and the loop keeps going.
func (s *Service) RunWorker(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Println("✅ Menu ingestion worker started")
	for {
		select {
		case <-ctx.Done():
			log.Println("Menu ingestion worker stopped")
			return
		case <-ticker.C:
			for {
				processed, err := s.ProcessOne(ctx)
				if err != nil {
					log.Printf("ingestion worker: %v", err)
				}
				if !processed {
					break
				}
			}
		}
	}
}
