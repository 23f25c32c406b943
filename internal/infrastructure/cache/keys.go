package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"
)

const (
	recommendationsPrefix = "recs:"
	recommendationLockKey = "recs:lock:"
	jobSearchPrefix       = "jobsearch:"
)

func RecommendationsKey(userID, resumeID string) string {
	return recommendationsPrefix + userID + ":" + resumeID
}

func RecommendationsPattern(userID string) string {
	return recommendationsPrefix + userID + ":*"
}

// RecommendationsLockKey guards a single generation run per user.
func RecommendationsLockKey(userID string) string {
	return recommendationLockKey + userID
}

type jobSearchKeyInput struct {
	Skills   []string `json:"skills"`
	Location string   `json:"location"`
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// JobSearchKey hashes the normalized search inputs. Skill order and case do
// not affect the key.
func JobSearchKey(skills []string, location string) string {
	norm := make([]string, 0, len(skills))
	for _, s := range skills {
		if s = normalize(s); s != "" {
			norm = append(norm, s)
		}
	}
	sort.Strings(norm)

	b, _ := json.Marshal(jobSearchKeyInput{Skills: norm, Location: normalize(location)})
	sum := sha256.Sum256(b)
	return jobSearchPrefix + hex.EncodeToString(sum[:])
}
