package utils

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

var node *snowflake.Node

func InitSnowflake() {
	if err := NewSnowflakeNode(viper.GetString("server.start_time"), viper.GetInt64("server.machine_id")); err != nil {
		panic(err.Error())
	}
}

// NewSnowflakeNode 以 startTime（2006-01-02）为起点，machineID 为节点编号
func NewSnowflakeNode(startTime string, machineID int64) error {
	st, err := time.Parse("2006-01-02", startTime)
	if err != nil {
		return errors.Wrap(err, "utils:NewSnowflakeNode: Parse")
	}

	snowflake.Epoch = st.UnixMilli()
	n, err := snowflake.NewNode(machineID)
	if err != nil {
		return errors.Wrap(err, "utils:NewSnowflakeNode: NewNode")
	}
	node = n
	return nil
}

func GenSnowflakeID() int64 {
	return node.Generate().Int64()
}
