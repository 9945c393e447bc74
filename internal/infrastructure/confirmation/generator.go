package confirmation

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mikiasgoitom/yamdb/internal/domain/contract"
	"github.com/mikiasgoitom/yamdb/internal/domain/entity"
)

// signatureLength is the number of hex characters kept from the MAC.
const signatureLength = 20

// Generator issues confirmation codes of the form "<unix base36>-<mac>".
// The MAC covers the user's id, email, activation flag and last login, so
// any of those changing spends every outstanding code.
type Generator struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func NewGenerator(key []byte, ttl time.Duration) *Generator {
	return &Generator{key: key, ttl: ttl, now: time.Now}
}

var _ contract.IConfirmationCodeGenerator = (*Generator)(nil)

func (g *Generator) MakeCode(user *entity.User) (string, error) {
	if user == nil || user.ID == "" {
		return "", errors.New("make confirmation code: user without id")
	}
	ts := g.now().Unix()
	return strconv.FormatInt(ts, 36) + "-" + g.sign(user, ts), nil
}

func (g *Generator) CheckCode(user *entity.User, code string) bool {
	if user == nil {
		return false
	}
	tsPart, sig, ok := strings.Cut(code, "-")
	if !ok || len(sig) != signatureLength {
		return false
	}
	ts, err := strconv.ParseInt(tsPart, 36, 64)
	if err != nil {
		return false
	}
	if !hmac.Equal([]byte(sig), []byte(g.sign(user, ts))) {
		return false
	}
	age := g.now().Sub(time.Unix(ts, 0))
	return age >= 0 && age <= g.ttl
}

func (g *Generator) sign(user *entity.User, ts int64) string {
	var login int64
	if user.LastLogin != nil {
		login = user.LastLogin.UTC().Unix()
	}
	mac := hmac.New(sha256.New, g.key)
	fmt.Fprintf(mac, "%s\x00%s\x00%t\x00%d\x00%d", user.ID, user.Email, user.IsActive, login, ts)
	return hex.EncodeToString(mac.Sum(nil))[:signatureLength]
}
