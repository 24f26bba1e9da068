package download

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/venicegeo/bf-s1-mosaic/util"
)

// Aria2Downloader drives the external aria2c utility against the ASF search
// API's metalink output, which aria2c consumes as a parallel download
// manifest. Credentials are passed through as an aria2c conf file containing
// the EARTHDATA http-user/http-passwd pair.
type Aria2Downloader struct {
	BaseASFURL      string
	CredentialsPath string
	Aria2Path       string
	LogContext      util.LogContext
}

// NewAria2Downloader builds a downloader using configuration from the
// environment
func NewAria2Downloader() *Aria2Downloader {
	return &Aria2Downloader{
		BaseASFURL:      util.GetASFAPIURL(),
		CredentialsPath: util.GetEarthdataCredentialsPath(),
		Aria2Path:       "aria2c",
		LogContext:      &util.BasicLogContext{},
	}
}

// Download implements the Downloader interface
func (d *Aria2Downloader) Download(ctx context.Context, granuleIDs []string, destDir string) ([]Status, error) {
	if len(granuleIDs) == 0 {
		return nil, nil
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, fmt.Errorf("unable to create directory %v: %v", destDir, err)
	}

	// The credentials file is parsed up front so a bad file fails before
	// any download starts rather than as an opaque aria2c auth error.
	if _, err := util.ReadEarthdataCredentials(d.CredentialsPath); err != nil {
		return nil, fmt.Errorf("EARTHDATA credentials: %v", err)
	}

	params := url.Values{}
	params.Set("granule_list", strings.Join(granuleIDs, ","))
	params.Set("output", "metalink")
	downloadURL := d.BaseASFURL + "?" + params.Encode()

	util.LogAudit(d.LogContext, util.LogAuditInput{
		Actor: "download/aria2", Action: "exec", Actee: downloadURL,
		Message: fmt.Sprintf("Downloading %d granule(s) to %v", len(granuleIDs), destDir), Severity: util.INFO,
	})

	cmd := exec.CommandContext(ctx, d.Aria2Path,
		"--http-auth-challenge=true",
		"--conf-path="+d.CredentialsPath,
		"--retry-wait=30",
		"--max-tries=20",
		"--dir="+destDir,
		downloadURL,
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	runErr := cmd.Run()
	if runErr != nil {
		util.LogAlert(d.LogContext, fmt.Sprintf("aria2c exited with error: %v", runErr))
	}

	statuses := make([]Status, len(granuleIDs))
	for i, granuleID := range granuleIDs {
		archivePath := filepath.Join(destDir, granuleID+".zip")
		statuses[i] = Status{GranuleID: granuleID, Path: archivePath}
		if _, err := os.Stat(archivePath); err != nil {
			statuses[i].Err = fmt.Errorf("granule %v was not downloaded: %w", granuleID, err)
			if runErr != nil {
				statuses[i].Err = fmt.Errorf("granule %v was not downloaded: %w", granuleID, runErr)
			}
		}
	}
	return statuses, nil
}
