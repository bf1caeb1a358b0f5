package models

import (
	"fmt"
	"strconv"
	"strings"
)

// BanKey identifies a ban record by community and subject.
type BanKey struct {
	CommunityID int64
	SubjectID   int64
}

// String encodes the key as "communityID:subjectID". The encoding is
// stable and reversible; ParseBanKey is the inverse.
func (k BanKey) String() string {
	return fmt.Sprintf("%d:%d", k.CommunityID, k.SubjectID)
}

// ParseBanKey decodes a key produced by BanKey.String.
func ParseBanKey(s string) (BanKey, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return BanKey{}, fmt.Errorf("invalid ban key: %q", s)
	}
	communityID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return BanKey{}, fmt.Errorf("invalid community id in ban key %q: %w", s, err)
	}
	subjectID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return BanKey{}, fmt.Errorf("invalid subject id in ban key %q: %w", s, err)
	}
	return BanKey{CommunityID: communityID, SubjectID: subjectID}, nil
}

// EncodeIDList serializes an ordered id list as a comma-joined string.
// Order is preserved; an empty list encodes as "".
func EncodeIDList(ids []int64) string {
	if len(ids) == 0 {
		return ""
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

// DecodeIDList is the inverse of EncodeIDList.
func DecodeIDList(s string) ([]int64, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id list entry %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
