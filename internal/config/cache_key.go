package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// StudentSessionKey returns the cache key for a student's login session (JTI).
func (r *CacheKeyStruct) StudentSessionKey(studentID int) string {
	return fmt.Sprintf("login:%d", studentID)
}

// TestPaperKey returns the cache key for a generated test's student-facing paper.
func (r *CacheKeyStruct) TestPaperKey(testID string) string {
	return fmt.Sprintf("test:%s:paper", testID)
}

// TestAnswerKeyKey returns the cache key for a test's answer key hash.
func (r *CacheKeyStruct) TestAnswerKeyKey(testID string) string {
	return fmt.Sprintf("test:%s:key", testID)
}

// TestMarkingKey returns the cache key for a test's per-question marking hash.
func (r *CacheKeyStruct) TestMarkingKey(testID string) string {
	return fmt.Sprintf("test:%s:marking", testID)
}

// AttemptAnswersKey returns the cache key for an attempt's autosaved answers.
func (r *CacheKeyStruct) AttemptAnswersKey(attemptID string) string {
	return fmt.Sprintf("attempt:%s:answers", attemptID)
}

// StudentActiveAttemptKey returns the cache key for a student's active attempt.
func (r *CacheKeyStruct) StudentActiveAttemptKey(studentID int) string {
	return fmt.Sprintf("student:%d:active_attempt", studentID)
}

var CacheKey = NewCacheKeyStruct()
