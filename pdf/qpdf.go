package pdf

import (
	"context"
	"fmt"
)

func encryptArgs(in, out, userPassword, ownerPassword string) []string {
	return []string{"--encrypt", userPassword, ownerPassword, EncryptionKeyLength, "--", in, out}
}

func decryptArgs(in, out, password string) []string {
	return []string{"--decrypt", "--password=" + password, in, out}
}

func optimizeArgs(in, out string) []string {
	return []string{"--linearize", "--compress-streams=y", "--object-streams=generate", in, out}
}

// runQPDF resolves qpdf and runs it. The raw exit code is returned so
// callers can apply qpdf's exit status conventions.
func (t *Tools) runQPDF(ctx context.Context, args []string) (stdout []byte, code int, err error) {
	qpdf, err := t.Resolve(QPDF)
	if err != nil {
		return nil, 0, err
	}
	stdout, _, err = t.execCommandWithTimeout(ctx, QPDF, qpdf, args...)
	if err != nil {
		if c, ok := exitCode(err); ok {
			return stdout, c, nil
		}
		return stdout, 0, err
	}
	return stdout, 0, nil
}

// writeSucceeded treats exit 3 (warnings) as success if qpdf produced out.
func (t *Tools) writeSucceeded(code int, out string) bool {
	if code == 0 {
		return true
	}
	if code == qpdfExitWarnings && fileExists(out) {
		t.log.WithField("output", out).Warn("qpdf finished with warnings")
		return true
	}
	return false
}

func (t *Tools) qpdfVersion(ctx context.Context) (string, error) {
	stdout, code, err := t.runQPDF(ctx, []string{"--version"})
	if err != nil {
		return "", err
	}
	if code != 0 {
		return "", fmt.Errorf("failed to get qpdf version: %w", &ExitError{Tool: QPDF, Op: "version query", Code: code})
	}
	return firstLine(stdout), nil
}

func (t *Tools) qpdfEncrypt(ctx context.Context, in, out, userPassword, ownerPassword string) error {
	_, code, err := t.runQPDF(ctx, encryptArgs(in, out, userPassword, ownerPassword))
	if err != nil {
		return err
	}
	if !t.writeSucceeded(code, out) {
		return &ExitError{Tool: QPDF, Op: "encryption", Code: code}
	}
	return nil
}

func (t *Tools) qpdfDecrypt(ctx context.Context, in, out, password string) error {
	_, code, err := t.runQPDF(ctx, decryptArgs(in, out, password))
	if err != nil {
		return err
	}
	if !t.writeSucceeded(code, out) {
		return ErrWrongPassword
	}
	return nil
}

func (t *Tools) qpdfOptimize(ctx context.Context, in, out string) error {
	_, code, err := t.runQPDF(ctx, optimizeArgs(in, out))
	if err != nil {
		return err
	}
	if !t.writeSucceeded(code, out) {
		return &ExitError{Tool: QPDF, Op: "optimization", Code: code}
	}
	return nil
}

// qpdfIsEncrypted maps "qpdf --is-encrypted": exit 0 encrypted, 2 not.
func (t *Tools) qpdfIsEncrypted(ctx context.Context, in string) (bool, error) {
	_, code, err := t.runQPDF(ctx, []string{"--is-encrypted", in})
	if err != nil {
		return false, err
	}
	switch code {
	case 0:
		return true, nil
	case qpdfExitNotEncrypted:
		return false, nil
	default:
		return false, &ExitError{Tool: QPDF, Op: "encryption check", Code: code}
	}
}
