package order

import "encoding/json"

type CreateOrderRequest struct {
	ProjectID        string  `json:"project_id" binding:"required,uuid"`
	DraftName        string  `json:"draft_name" binding:"required"`
	DraftNumber      *string `json:"draft_number"`
	OrderNumber      *string `json:"order_number"`
	ManufacturerID   *string `json:"manufacturer_id"`
	TemplateName     *string `json:"template_name"`
	DesignerInitials *string `json:"designer_initials"`
	EngineerInitials *string `json:"engineer_initials"`
}

type AddItemRequest struct {
	Position         int             `json:"position" binding:"required,min=1"`
	ArticleNumber    string          `json:"article_number" binding:"required"`
	Description      *string         `json:"description"`
	Quantity         int             `json:"quantity" binding:"required,min=1"`
	Diameter         *float64        `json:"diameter"`
	Length           *float64        `json:"length"`
	Width            *float64        `json:"width"`
	Height           *float64        `json:"height"`
	ManufacturerData json.RawMessage `json:"manufacturer_data"`
}

type MetadataResponse struct {
	ProjectName      string  `json:"project_name"`
	ProjectNumber    string  `json:"project_number"`
	DesignerInitials *string `json:"designer_initials,omitempty"`
	EngineerInitials *string `json:"engineer_initials,omitempty"`
}

type OrderResponse struct {
	ID             string           `json:"id"`
	ProjectID      string           `json:"project_id"`
	DraftName      string           `json:"draft_name"`
	DraftNumber    string           `json:"draft_number"`
	OrderNumber    string           `json:"order_number"`
	ManufacturerID *string          `json:"manufacturer_id,omitempty"`
	TemplateName   *string          `json:"template_name,omitempty"`
	Metadata       MetadataResponse `json:"metadata"`
	Status         string           `json:"status"`
}

type OrderItemResponse struct {
	ID               string          `json:"id"`
	OrderID          string          `json:"order_id"`
	Position         int             `json:"position"`
	ArticleNumber    string          `json:"article_number"`
	Description      *string         `json:"description,omitempty"`
	Quantity         int             `json:"quantity"`
	Diameter         *float64        `json:"diameter,omitempty"`
	Length           *float64        `json:"length,omitempty"`
	Width            *float64        `json:"width,omitempty"`
	Height           *float64        `json:"height,omitempty"`
	ManufacturerData json.RawMessage `json:"manufacturer_data,omitempty"`
}
