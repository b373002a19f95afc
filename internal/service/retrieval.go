package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/SeakMengs/DocCollect/internal/constant"
	"github.com/SeakMengs/DocCollect/internal/model"
	"github.com/SeakMengs/DocCollect/internal/util"
	"golang.org/x/sync/errgroup"
)

type RetrievalService struct {
	*baseService
	scheduleDeletion func(objectKey string, after time.Duration)
}

type DownloadLink struct {
	SignedURL        string `json:"signedUrl"`
	DownloadFilename string `json:"downloadFilename"`
}

// Signed url for one stored object, the browser saves it as "<prefix> - <filename>"
func (rs RetrievalService) DownloadURL(ctx context.Context, filePath, filename, prefix string) (*DownloadLink, error) {
	downloadName := model.ToLabeledFilename(prefix, filename)

	signedURL, err := rs.storage.PresignedGetURL(ctx, filePath, rs.cfg.Upload.SignedURLExpiry, downloadName)
	if err != nil {
		rs.logger.Errorf("Failed to sign download url for %s: %v", filePath, err)
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	return &DownloadLink{SignedURL: signedURL, DownloadFilename: downloadName}, nil
}

func (rs RetrievalService) FileDownloadURL(ctx context.Context, slug, fileID string) (*DownloadLink, error) {
	checklist, err := rs.repo.Checklist.GetBySlug(ctx, nil, slug)
	if err != nil {
		return nil, notFoundOr(err, "checklist %s", slug)
	}

	file, err := rs.repo.ChecklistFile.GetById(ctx, nil, checklist.ID, fileID)
	if err != nil {
		return nil, notFoundOr(err, "file %s", fileID)
	}

	label := model.FileLabel(checklist.ItemTitles(), file.ItemID)
	return rs.DownloadURL(ctx, file.FilePath, file.Filename, label)
}

// Bundle every file of the checklist into one zip and return a signed url to it.
// A nil adminKey skips the key check, a wrong one is Forbidden.
// Files that cannot be fetched are left out of the archive.
func (rs RetrievalService) ZipDownloadURL(ctx context.Context, slug string, adminKey *string) (*DownloadLink, error) {
	checklist, err := rs.repo.Checklist.GetBySlugWithFiles(ctx, nil, slug)
	if err != nil {
		return nil, notFoundOr(err, "checklist %s", slug)
	}

	if adminKey != nil && !checklist.VerifyAdminKey(*adminKey) {
		return nil, ErrForbidden
	}

	if len(checklist.Files) == 0 {
		return nil, ErrNoFiles
	}

	entries := rs.collectEntries(ctx, checklist)
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: none of the %d files could be downloaded", ErrStorage, len(checklist.Files))
	}

	now := rs.now()
	objectKey := util.ToTemporaryArchiveKey(constant.TemporaryArchiveDirectory, checklist.Slug, now)
	if err := rs.uploadArchive(ctx, objectKey, entries); err != nil {
		rs.logger.Errorf("Failed to upload archive %s: %v", objectKey, err)
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	ttl := rs.cfg.Archive.TTL
	if _, err := rs.repo.TemporaryArchive.Create(ctx, nil, &model.TemporaryArchive{
		ChecklistID: checklist.ID,
		ObjectKey:   objectKey,
		ExpiresAt:   now.Add(ttl),
	}); err != nil {
		rs.logger.Errorf("Failed to record temporary archive %s: %v", objectKey, err)
	}

	downloadName := util.ToArchiveDownloadName(constant.ArchiveDownloadNamePrefix, checklist.Slug, now)
	signedURL, err := rs.storage.PresignedGetURL(ctx, objectKey, rs.cfg.Upload.SignedURLExpiry, downloadName)
	if err != nil {
		rs.logger.Errorf("Failed to sign archive url %s: %v", objectKey, err)
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	if rs.scheduleDeletion != nil {
		rs.scheduleDeletion(objectKey, ttl)
	}

	rs.logger.Infof("Archive %s created with %d of %d files", objectKey, len(entries), len(checklist.Files))
	return &DownloadLink{SignedURL: signedURL, DownloadFilename: downloadName}, nil
}

// Fetch all blobs in parallel, keeping the original file order in the archive
func (rs RetrievalService) collectEntries(ctx context.Context, checklist *model.Checklist) []util.ZipEntry {
	files := checklist.Files
	contents := make([][]byte, len(files))

	var g errgroup.Group
	g.SetLimit(util.DetermineWorkers(len(files)))

	for i, file := range files {
		g.Go(func() error {
			content, err := rs.fetch(ctx, file.FilePath)
			if err != nil {
				rs.logger.Errorf("Skipping %s in archive of %s: %v", file.FilePath, checklist.Slug, err)
				return nil
			}
			contents[i] = content
			return nil
		})
	}
	// goroutines never return an error
	_ = g.Wait()

	titles := checklist.ItemTitles()
	namer := util.NewUniqueNamer()
	entries := make([]util.ZipEntry, 0, len(files))
	for i, file := range files {
		if contents[i] == nil {
			continue
		}
		entries = append(entries, util.ZipEntry{
			Name:     namer.Name(model.ToLabeledFilename(model.FileLabel(titles, file.ItemID), file.Filename)),
			Content:  contents[i],
			Modified: file.UploadedAt,
		})
	}

	return entries
}

func (rs RetrievalService) fetch(ctx context.Context, key string) ([]byte, error) {
	reader, err := rs.storage.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	if content == nil {
		content = []byte{}
	}
	return content, nil
}

// Stage the archive in a temp file, then upload it under objectKey
func (rs RetrievalService) uploadArchive(ctx context.Context, objectKey string, entries []util.ZipEntry) error {
	tmp, err := util.CreateTemp("archive-*.zip")
	if err != nil {
		return err
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if err := util.WriteZip(tmp, entries); err != nil {
		return err
	}

	info, err := tmp.Stat()
	if err != nil {
		return err
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return err
	}

	return rs.storage.Put(ctx, objectKey, tmp, info.Size(), constant.ZipContentType)
}
