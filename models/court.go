package models

type Court struct {
	ID       uint    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name     string  `gorm:"column:name;size:100;not null" json:"name"`
	KbjuCode string  `gorm:"column:kbju_code;size:20;not null;uniqueIndex:idx_court_kbju_code" json:"kbju_code"`
	QRCode   *string `gorm:"column:qr_code;size:100" json:"qr_code"` // đường dẫn object ảnh QR (qr_codes/<code>.png)

	// QRCodeURL dựng từ QRCode khi đọc, không lưu
	QRCodeURL string `gorm:"-" json:"qr_code_url,omitempty"`

	// Quan hệ
	Surveys []Survey `gorm:"many2many:court_survey;constraint:OnDelete:CASCADE" json:"surveys,omitempty"`
}

func (Court) TableName() string {
	return "court"
}

func (c Court) String() string {
	if c.Name == "" {
		return label("Court", c.ID)
	}
	return c.Name
}
