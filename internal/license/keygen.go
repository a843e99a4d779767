// internal/license/keygen.go
package license

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"net"
	"os"
	"runtime"

	"github.com/keygen-sh/keygen-go/v3"
	"go.uber.org/zap"
)

// Gate validates the product license with Keygen before the terminal
// starts. An unconfigured gate (empty account ID) passes everything
// through, so licensing stays optional for local builds.
type Gate struct {
	logger    *zap.Logger
	accountID string
}

// NewGate creates a license gate. Configure the global Keygen client
// only when an account is set.
func NewGate(accountID, productID, productToken string, logger *zap.Logger) *Gate {
	if accountID != "" {
		keygen.Account = accountID
		keygen.Product = productID
		keygen.Token = productToken
	}

	return &Gate{
		logger:    logger.Named("license"),
		accountID: accountID,
	}
}

// Check validates the license key, activating this machine on first
// use. A nil error means the terminal may start.
func (g *Gate) Check(ctx context.Context, licenseKey string) error {
	if g.accountID == "" {
		g.logger.Debug("License gate disabled")
		return nil
	}
	if licenseKey == "" {
		return errors.New("license key required")
	}

	fingerprint, err := machineFingerprint()
	if err != nil {
		return fmt.Errorf("failed to generate machine fingerprint: %w", err)
	}

	keygen.LicenseKey = licenseKey

	lic, err := keygen.Validate(ctx, fingerprint)
	switch {
	case errors.Is(err, keygen.ErrLicenseNotActivated):
		g.logger.Info("License not activated, attempting activation")
		machine, activateErr := lic.Activate(ctx, fingerprint)
		if activateErr != nil {
			return fmt.Errorf("failed to activate license: %w", activateErr)
		}
		g.logger.Info("License activated",
			zap.String("machine_id", machine.ID))

	case errors.Is(err, keygen.ErrLicenseExpired):
		return errors.New("license has expired")

	case err != nil:
		return fmt.Errorf("license validation failed: %w", err)
	}

	g.logger.Info("License valid")
	return nil
}

// machineFingerprint derives a stable identifier from the host name,
// the first active MAC address and the OS.
func machineFingerprint() (string, error) {
	interfaces, err := net.Interfaces()
	if err != nil {
		return "", err
	}

	var mac string
	for _, iface := range interfaces {
		if iface.Flags&net.FlagUp != 0 && iface.Flags&net.FlagLoopback == 0 {
			mac = iface.HardwareAddr.String()
			break
		}
	}
	if mac == "" {
		return "", errors.New("no active network interface found")
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	data := fmt.Sprintf("%s-%s-%s", hostname, mac, runtime.GOOS)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash), nil
}
