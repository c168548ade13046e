/*
 * @module cmd/samplingctl/main
 * @description 抽样计算命令行工具，离线查询字码表、抽样方案与判定结果
 * @architecture 命令行工具
 * @documentReference NBR 5426 / ANSI Z1.4
 * @stateFlow 解析参数 -> 构建抽样引擎 -> 计算 -> 按格式输出
 * @rules 与 HTTP 接口共用同一抽样引擎；输出 JSON 或 YAML
 * @dependencies github.com/spf13/cobra, gopkg.in/yaml.v3, inspection-service/service/sampling
 * @refs api/controllers/sampling_controller.go
 */

package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
