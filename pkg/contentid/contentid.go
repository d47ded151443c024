// Package contentid derives stable, content-addressed identifiers for
// analysis configuration entities. Identical semantic content always yields
// the same id, so resubmitting an unchanged configuration reuses the same
// backend-side identifier and the engine can recognize work it has already
// done. Structural position and session-only metadata never participate.
package contentid

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"

	"github.com/profilenet/backend/pkg/common"
)

// hexLen is the truncated digest length: 64 bits of collision resistance,
// a size/safety tradeoff rather than a uniqueness guarantee.
const hexLen = 16

// Generator turns entity payloads into identifiers. The zero value is not
// usable; construct with New or NewFallback.
type Generator struct {
	weak bool
}

// New returns a generator backed by SHA-256, truncated to a fixed-length
// hex string.
func New() *Generator {
	return &Generator{}
}

// NewFallback returns a generator backed by a 32-bit rolling shift-add hash
// encoded in base36. Its output carries a per-type prefix (kw_, subj_, ...)
// so it can never be mistaken for the primary scheme. It is NOT
// collision-resistant; use it only where the SHA-256 primitive is
// unavailable.
func NewFallback() *Generator {
	return &Generator{weak: true}
}

// KeywordID hashes a keyword's name, query and info.
func (g *Generator) KeywordID(name, query, info string) string {
	return g.id("kw_", "keyword:"+name+"|"+query+"|"+info)
}

// SubjectID hashes a subject's name, keyword contents and filter guide.
// Keywords are sorted before hashing so that reordering them, which does
// not change meaning, does not change the id.
func (g *Generator) SubjectID(groupName string, keywords []common.Keyword, filterGuide string) string {
	return g.id("subj_", "subject:"+groupName+"|"+keywordSet(keywords)+"|"+filterGuide)
}

// RelationID hashes a relation's name, edge name, keyword contents and
// relation guide.
func (g *Generator) RelationID(groupName, edgeName string, keywords []common.Keyword, relationGuide string) string {
	return g.id("rel_", "relation:"+groupName+"|"+edgeName+"|"+keywordSet(keywords)+"|"+relationGuide)
}

// AnalysisID hashes an expression analysis configuration. Methods are
// sorted so selection order does not affect the id.
func (g *Generator) AnalysisID(groupName, textType string, methods []string, poolSize int, analysisGuide string) string {
	sorted := make([]string, len(methods))
	copy(sorted, methods)
	sort.Strings(sorted)

	payload := "analysis:" + groupName + "|" + textType + "|" +
		strings.Join(sorted, ",") + "|" + strconv.Itoa(poolSize) + "|" + analysisGuide
	return g.id("ana_", payload)
}

// ProjectID hashes the owning user and the creation instant. The result is
// assigned once at creation and survives renames.
func (g *Generator) ProjectID(userID, createdAt string) string {
	return g.id("proj_", "project:"+userID+"|"+createdAt)
}

func (g *Generator) id(fallbackPrefix, payload string) string {
	if g.weak {
		return fallbackPrefix + rollingHash(payload)
	}
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])[:hexLen]
}

// keywordSet serializes a keyword list as name|query|info per item, sorted
// lexicographically and joined with a fixed delimiter.
func keywordSet(keywords []common.Keyword) string {
	items := make([]string, len(keywords))
	for i, kw := range keywords {
		items[i] = kw.Name + "|" + kw.Query + "|" + kw.Info
	}
	sort.Strings(items)
	return strings.Join(items, "::")
}

// rollingHash is the weak fallback digest: a 32-bit multiply-by-31
// accumulator over the payload's UTF-8 bytes, base36 encoded.
func rollingHash(s string) string {
	var h int32
	for i := 0; i < len(s); i++ {
		h = (h<<5 - h) + int32(s[i])
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return strconv.FormatInt(v, 36)
}
