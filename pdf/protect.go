package pdf

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Protect encrypts in with AES-256. The owner password defaults to the
// user password when empty.
func (t *Tools) Protect(ctx context.Context, in, out, userPassword, ownerPassword string) (*FileResult, error) {
	if err := ValidatePDF(in); err != nil {
		return nil, err
	}
	if userPassword == "" {
		return nil, ErrEmptyPassword
	}
	out = outputOrDefault(in, out, SuffixProtected)
	if err := checkOutputDistinct(out, in); err != nil {
		return nil, err
	}
	if ownerPassword == "" {
		ownerPassword = userPassword
	}

	if err := t.qpdfEncrypt(ctx, in, out, userPassword, ownerPassword); err != nil {
		return nil, err
	}

	size, err := outputSize(out)
	if err != nil {
		return nil, err
	}
	t.log.WithFields(logrus.Fields{"operation": "protect", "input": in, "output": out}).Info("PDF protected")
	return &FileResult{OutputPath: out, Size: size}, nil
}

// Unlock removes password protection from in.
func (t *Tools) Unlock(ctx context.Context, in, out, password string) (*FileResult, error) {
	if err := ValidatePDF(in); err != nil {
		return nil, err
	}
	out = outputOrDefault(in, out, SuffixUnlocked)
	if err := checkOutputDistinct(out, in); err != nil {
		return nil, err
	}

	if err := t.qpdfDecrypt(ctx, in, out, password); err != nil {
		return nil, err
	}

	size, err := outputSize(out)
	if err != nil {
		return nil, err
	}
	t.log.WithFields(logrus.Fields{"operation": "unlock", "input": in, "output": out}).Info("PDF unlocked")
	return &FileResult{OutputPath: out, Size: size}, nil
}

// IsEncrypted reports whether in is password protected.
func (t *Tools) IsEncrypted(ctx context.Context, in string) (bool, error) {
	if err := ValidatePDF(in); err != nil {
		return false, err
	}
	return t.qpdfIsEncrypted(ctx, in)
}
