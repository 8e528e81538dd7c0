package model

const (
	CampaignStatusActive    = "active"
	CampaignStatusInactive  = "inactive"
	CampaignStatusCompleted = "completed"
)

// Campaign 對此核心而言是唯讀的，只有status會影響商品能否購買
type Campaign struct {
	CampaignID string    `gorm:"primaryKey;type:varchar(100)" json:"campaign_id"`
	BrandID    string    `gorm:"not null;type:varchar(100);index" json:"brand_id"`
	Title      string    `gorm:"not null;type:varchar(255)" json:"title"`
	Status     string    `gorm:"not null;type:varchar(20);default:'active'" json:"status"`
	Products   []Product `gorm:"foreignKey:CampaignID;constraint:OnDelete:CASCADE" json:"products,omitempty"` // 一對多，級聯刪除
	BaseModel
}

func (c *Campaign) IsActive() bool {
	return c.Status == CampaignStatusActive
}
