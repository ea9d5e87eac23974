// Package receipt renders the customer-facing verification QR for a
// created invoice.
package receipt

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-faster/errors"
	"github.com/skip2/go-qrcode"

	"github.com/arco365/go-arco-pos/arco"
)

// VerificationLink builds the lookup URL printed on the ticket:
// {base}/client-app/factura/{id}/{dd-MM-yyyy}
func VerificationLink(env arco.Environment, facturaID int64, issued time.Time) string {
	return fmt.Sprintf("%s/client-app/factura/%d/%s", env.BaseURL(), facturaID, issued.Format("02-01-2006"))
}

// Qr encodes the content as a 300x300 PNG.
func Qr(content string) ([]byte, error) {
	return qrcode.Encode(content, qrcode.Medium, 300)
}

// Write renders the verification QR into dir as factura-{id}.png and
// returns the file path.
func Write(dir string, env arco.Environment, facturaID int64, issued time.Time) (string, error) {

	png, err := Qr(VerificationLink(env, facturaID, issued))
	if err != nil {
		return "", errors.Wrap(err, "encode receipt qr")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(err, "create receipt dir")
	}

	path := filepath.Join(dir, fmt.Sprintf("factura-%d.png", facturaID))
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return "", errors.Wrap(err, "write receipt file")
	}
	return path, nil
}
