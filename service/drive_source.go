package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// DriveSource serves assets from a Google Drive folder, for catalogs that
// are maintained in a shared Drive instead of a local directory.
// Implements AssetSource
type DriveSource struct {
	client   *drive.Service
	folderID string
	fileIDs  map[string]string // filename -> Drive file ID, filled by List
}

// NewDriveSource creates a DriveSource using a Service Account JSON file.
func NewDriveSource(credentialsPath string, folderID string) (*DriveSource, error) {
	ctx := context.Background()

	driveService, err := drive.NewService(ctx, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DriveSource{
		client:   driveService,
		folderID: folderID,
		fileIDs:  make(map[string]string),
	}, nil
}

// Ensure DriveSource implements AssetSource
var _ AssetSource = (*DriveSource)(nil)

// List returns the image file names in the Drive folder, sorted by name so
// the order is stable across runs like a local directory listing.
func (s *DriveSource) List() ([]string, error) {
	query := fmt.Sprintf("'%s' in parents and trashed=false", s.folderID)

	var allFiles []*drive.File
	pageToken := ""
	for {
		call := s.client.Files.List().
			Q(query).
			Fields("nextPageToken, files(id, name, mimeType)")

		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		r, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list files: %w", err)
		}

		allFiles = append(allFiles, r.Files...)
		pageToken = r.NextPageToken

		if pageToken == "" {
			break
		}
	}

	imageMimeTypes := map[string]bool{
		"image/png":  true,
		"image/jpeg": true,
		"image/jpg":  true,
	}

	var names []string
	for _, file := range allFiles {
		if !imageMimeTypes[strings.ToLower(file.MimeType)] {
			continue
		}
		s.fileIDs[file.Name] = file.Id
		names = append(names, file.Name)
	}

	sort.Strings(names)
	return names, nil
}

// Read downloads the bytes of one asset by its file name. List must have
// seen the file first.
func (s *DriveSource) Read(name string) ([]byte, error) {
	fileID, ok := s.fileIDs[name]
	if !ok {
		return nil, fmt.Errorf("unknown drive asset %s (not seen by List)", name)
	}

	resp, err := s.client.Files.Get(fileID).Download()
	if err != nil {
		return nil, fmt.Errorf("failed to download drive asset %s: %w", name, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read drive asset %s: %w", name, err)
	}
	return data, nil
}
