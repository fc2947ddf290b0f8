package tskit

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

const googleStoragePrefix = "gs://"

// OpenTablesDBContext is OpenTablesDB for paths that may live in Google
// Cloud Storage. A gs://bucket/object path is first copied to a local
// temporary file, since SQLite can only open local files. The returned
// cleanup function removes that copy and must be called after Close.
func OpenTablesDBContext(ctx context.Context, p string) (*TablesDB, func(), error) {
	if !strings.HasPrefix(p, googleStoragePrefix) {
		db, err := OpenTablesDB(p)
		return db, func() {}, err
	}

	local, err := fetchGoogleStorageObject(ctx, p)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { os.Remove(local) }

	db, err := OpenTablesDB(local)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	return db, cleanup, nil
}

// parseGoogleStoragePath splits gs://bucket/some/object into its bucket and
// object names.
func parseGoogleStoragePath(p string) (bucket, object string, err error) {
	if !strings.HasPrefix(p, googleStoragePrefix) {
		return "", "", fmt.Errorf("%s does not start with %s", p, googleStoragePrefix)
	}
	parts := strings.SplitN(strings.TrimPrefix(p, googleStoragePrefix), "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%s does not name both a bucket and an object", p)
	}
	return parts[0], parts[1], nil
}

func fetchGoogleStorageObject(ctx context.Context, p string) (string, error) {
	bucket, object, err := parseGoogleStoragePath(p)
	if err != nil {
		return "", pfx.Err(err)
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return "", pfx.Err(err)
	}
	defer client.Close()

	rdr, err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return "", pfx.Err(err)
	}
	defer rdr.Close()

	f, err := os.CreateTemp("", "tskit-*-"+path.Base(object))
	if err != nil {
		return "", pfx.Err(err)
	}

	if _, err := io.Copy(f, rdr); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", pfx.Err(err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", pfx.Err(err)
	}

	return f.Name(), nil
}
