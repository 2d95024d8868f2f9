package utils

import (
	"crypto/rand"
	"encoding/binary"
)

// 住户激活码字符集：大写base36
const residentCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// ResidentCodeLength 住户激活码长度
const ResidentCodeLength = 5

// RandomInt32 生成一个安全的随机32位整数
func RandomInt32() int32 {
	var num int32
	err := binary.Read(rand.Reader, binary.BigEndian, &num)
	if err != nil {
		panic("generate random int32 failed")
	}

	return num
}

// GenerateResidentCode 生成5位大写base36住户激活码
func GenerateResidentCode() string {
	buf := make([]byte, ResidentCodeLength)
	if _, err := rand.Read(buf); err != nil {
		panic("generate resident code failed")
	}

	code := make([]byte, ResidentCodeLength)
	for i, b := range buf {
		code[i] = residentCodeCharset[int(b)%len(residentCodeCharset)]
	}
	return string(code)
}
