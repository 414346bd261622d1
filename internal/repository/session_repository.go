package repository

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/veridia/storefront/internal/models"

	"github.com/glebarez/sqlite" // 纯 Go SQLite 驱动（基于 modernc.org/sqlite）
	"gorm.io/gorm"
)

// SessionRecord 本地持久化的会话凭证与用户资料缓存
type SessionRecord struct {
	ID          uint      `gorm:"primarykey"`
	Token       string    `gorm:"type:text;not null"`
	ProfileJSON string    `gorm:"type:text"`
	UpdatedAt   time.Time `gorm:"index"`
}

// TableName 指定表名
func (SessionRecord) TableName() string {
	return "session_records"
}

// SessionRepository 会话持久化访问接口
type SessionRepository interface {
	Load() (string, *models.User, error)
	Save(token string, user *models.User) error
	Clear() error
}

// GormSessionRepository GORM 实现
type GormSessionRepository struct {
	db *gorm.DB
}

// OpenSessionDB 打开本地会话库并迁移表结构
func OpenSessionDB(path string) (*gorm.DB, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("session db path is empty")
	}
	if dir := filepath.Dir(path); dir != "." && !strings.HasPrefix(path, "file:") {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&SessionRecord{}); err != nil {
		return nil, err
	}
	return db, nil
}

// NewSessionRepository 创建会话仓库
func NewSessionRepository(db *gorm.DB) *GormSessionRepository {
	return &GormSessionRepository{db: db}
}

// Load 读取已保存的会话；无记录时返回空凭证
func (r *GormSessionRepository) Load() (string, *models.User, error) {
	var record SessionRecord
	err := r.db.Order("id").First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, nil
	}
	if err != nil {
		return "", nil, err
	}
	var user *models.User
	if strings.TrimSpace(record.ProfileJSON) != "" {
		var decoded models.User
		if err := json.Unmarshal([]byte(record.ProfileJSON), &decoded); err == nil {
			user = &decoded
		}
	}
	return record.Token, user, nil
}

// Save 覆盖保存会话凭证与资料缓存（单行表）
func (r *GormSessionRepository) Save(token string, user *models.User) error {
	profileJSON := ""
	if user != nil {
		payload, err := json.Marshal(user)
		if err != nil {
			return err
		}
		profileJSON = string(payload)
	}
	record := SessionRecord{
		ID:          1,
		Token:       token,
		ProfileJSON: profileJSON,
		UpdatedAt:   time.Now(),
	}
	return r.db.Save(&record).Error
}

// Clear 清除已保存的会话
func (r *GormSessionRepository) Clear() error {
	return r.db.Where("1 = 1").Delete(&SessionRecord{}).Error
}
