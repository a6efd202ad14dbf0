package util

// PtrString 用于将 string 转换为 *string
func PtrString(s string) *string {
	return &s
}

// PtrInt 用于将 int 转换为 *int
func PtrInt(i int) *int {
	return &i
}
