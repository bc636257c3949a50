package dto

type CreateStoreInput struct {
	ID             string  `json:"id"`
	DisplayName    string  `json:"display_name"`
	FirmName       string  `json:"firm_name"`
	AreaCode       string  `json:"area_code"`
	RelatedStoreID *string `json:"related_store_id"`
}
