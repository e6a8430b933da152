package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Keys persisted in the .env file.
const (
	KeyM3UURL = "M3U_URL"
	KeyEPGURL = "EPG_URL"
)

// Store holds the default playlist and EPG URLs, persisted to a .env file.
// It is safe for concurrent use; the settings handler writes while playlist
// requests read.
type Store struct {
	mu    sync.RWMutex
	viper *viper.Viper
}

// NewStore loads the env file at path. A missing file is not an error; the
// store starts empty and the file is created on the first save.
func NewStore(path string) (*Store, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
		}
	}

	return &Store{viper: v}, nil
}

// URLs returns the configured default M3U and EPG URLs. Either may be empty.
func (s *Store) URLs() (m3uURL, epgURL string) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.viper.GetString(KeyM3UURL), s.viper.GetString(KeyEPGURL)
}

// SetURLs stores the default URLs and writes them back to the env file.
func (s *Store) SetURLs(m3uURL, epgURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.viper.Set(KeyM3UURL, strings.TrimSpace(m3uURL))
	s.viper.Set(KeyEPGURL, strings.TrimSpace(epgURL))

	if err := s.viper.WriteConfig(); err != nil {
		return fmt.Errorf("failed to write env file: %w", err)
	}

	return nil
}
