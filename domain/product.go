package domain

// CREATE TABLE public.product_catalog (
//     product_id       BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     product_name     TEXT,
//     product_category TEXT,
//     price            NUMERIC,
//     description      TEXT,
//     tags             TEXT
// );

type Product struct {
	ProductID       uint64  `gorm:"column:product_id;primaryKey;autoIncrement" json:"product_id"`
	ProductName     string  `gorm:"column:product_name;type:text" json:"product_name"`
	ProductCategory string  `gorm:"column:product_category;type:text" json:"product_category"`
	Price           float64 `gorm:"column:price;type:numeric" json:"price"`
	Description     string  `gorm:"column:description;type:text" json:"description"`
	Tags            string  `gorm:"column:tags;type:text" json:"tags"`
}

func (Product) TableName() string {
	return "product_catalog"
}
