package sheet

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/cory-johannsen/keeper/internal/game/gameerr"
)

// ErrInvalidUpload is the kind of every rejected stat upload.
var ErrInvalidUpload = errors.New("invalid stat upload")

// UploadPrefix starts every stat line pasted from a character creation sheet.
const UploadPrefix = ".st "

// Character ids accepted by uploads.
const (
	MinID = 0
	MaxID = 999
)

// MaxValue bounds an uploaded attribute value.
const MaxValue = 1_000_000

var uploadPair = regexp.MustCompile(`([a-zA-Z\x{4e00}-\x{9fa5}]+)(\d+)`)

// tracked attributes get a current_ twin on upload.
var tracked = map[string]bool{SAN: true, HP: true, MP: true}

// ValidateID checks that id is an assignable character id.
func ValidateID(id int) error {
	if id < MinID || id > MaxID {
		return gameerr.New(ErrInvalidUpload, "用户ID取值范围为0-999")
	}
	return nil
}

// ParseUpload parses a ".st str50dex60san55" line into entries. Each san, hp
// and mp attribute is followed by its current_ twin carrying the same value.
//
// Postcondition: Returns at least one entry, or an ErrInvalidUpload error.
func ParseUpload(line string) ([]Entry, error) {
	if !strings.HasPrefix(line, UploadPrefix) {
		return nil, gameerr.New(ErrInvalidUpload,
			"属性格式错误，应以.st 为开头，请遵循角色创建表中的格式或点击“操作指引”获取帮助")
	}
	matches := uploadPair.FindAllStringSubmatch(line[len(UploadPrefix):], -1)
	if len(matches) == 0 {
		return nil, gameerr.New(ErrInvalidUpload,
			"属性格式错误，请遵循角色创建表中的格式或点击“操作指引”获取帮助")
	}

	entries := make([]Entry, 0, len(matches))
	for _, m := range matches {
		v, err := strconv.Atoi(m[2])
		if err != nil || v > MaxValue {
			return nil, gameerr.New(ErrInvalidUpload,
				"属性格式错误，请遵循角色创建表中的格式或点击“操作指引”获取帮助")
		}
		entries = append(entries, Entry{Name: m[1], Value: v})
		if tracked[m[1]] {
			entries = append(entries, Entry{Name: CurrentPrefix + m[1], Value: v})
		}
	}
	return entries, nil
}
