package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/KaedeZzz/MatchRecommender/internal/model"

	"github.com/sirupsen/logrus"
)

// FileStore 以单个 JSON 文档（数组形式）保存合并后的比赛集合，
// 推荐器与外部脚本直接读取同一份文件。
type FileStore struct {
	path   string
	logger *logrus.Logger
}

// NewFileStore 创建文件存储
func NewFileStore(path string, logger *logrus.Logger) *FileStore {
	return &FileStore{path: path, logger: logger}
}

// Load 读取已持久化的比赛集合。文件不存在返回空集合；
// 内容损坏时提示并按空集合处理，下一次保存会整体重写。
func (s *FileStore) Load() ([]*model.Match, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []*model.Match{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("读取%s失败: %w", s.path, err)
	}

	var matches []*model.Match
	if err := json.Unmarshal(data, &matches); err != nil {
		s.logger.WithError(err).Warnf("%s 内容不是有效JSON，按空集合处理并等待重写", s.path)
		return []*model.Match{}, nil
	}
	// 数组里混入的 null 条目直接剔除
	cleaned := make([]*model.Match, 0, len(matches))
	for _, m := range matches {
		if m != nil {
			cleaned = append(cleaned, m)
		}
	}
	return cleaned, nil
}

// Save 全量写回比赛集合：先写同目录临时文件再重命名，避免中途失败留下半截文档
func (s *FileStore) Save(matches []*model.Match) error {
	if matches == nil {
		matches = []*model.Match{}
	}
	data, err := json.MarshalIndent(matches, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化比赛列表失败: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("创建临时文件失败: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("写入临时文件失败: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("关闭临时文件失败: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("设置文件权限失败: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("替换%s失败: %w", s.path, err)
	}
	return nil
}
