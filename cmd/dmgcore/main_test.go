package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"dmgcore/dmg/cpu"
)

func TestClassifyCrashNilIsNotACrash(t *testing.T) {
	opErr, ok := classifyCrash(nil)
	assert.False(t, ok)
	assert.Nil(t, opErr)
}

func TestClassifyCrashRecognizesUnsupportedOpcodeError(t *testing.T) {
	original := &cpu.UnsupportedOpcodeError{Opcode: 0xD3, PC: 0x1234, Dump: "dump"}
	opErr, ok := classifyCrash(original)
	assert.True(t, ok)
	assert.Same(t, original, opErr)
}

func TestClassifyCrashRepanicsUnrelatedError(t *testing.T) {
	defer func() {
		r := recover()
		assert.Equal(t, "unrelated bug", r.(error).Error())
	}()
	classifyCrash(errors.New("unrelated bug"))
	t.Fatal("classifyCrash should have re-panicked before reaching here")
}

func TestClassifyCrashRepanicsNonErrorValue(t *testing.T) {
	defer func() {
		r := recover()
		assert.Equal(t, "plain string panic", r)
	}()
	classifyCrash("plain string panic")
	t.Fatal("classifyCrash should have re-panicked before reaching here")
}
